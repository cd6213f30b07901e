package provider_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/streamchat/pkg/config"
	"github.com/papercomputeco/streamchat/pkg/llm/provider"
)

var _ = Describe("Detector", func() {
	var detector *provider.Detector

	BeforeEach(func() {
		detector = provider.NewDetector()
	})

	Describe("NewDetector", func() {
		It("creates a new detector instance", func() {
			Expect(detector).NotTo(BeNil())
		})
	})

	Describe("Detect", func() {
		Context("with OpenAI fragments", func() {
			It("detects a delta chunk", func() {
				p := detector.Detect([]byte(`{"choices":[{"delta":{"content":"Hi"}}]}`))
				Expect(p.Name()).To(Equal("openai"))
			})

			It("detects the chat.completion.chunk object type", func() {
				payload := []byte(`{
					"id": "chatcmpl-123",
					"object": "chat.completion.chunk",
					"model": "gpt-4o",
					"choices": []
				}`)

				p := detector.Detect(payload)
				Expect(p.Name()).To(Equal("openai"))
			})
		})

		Context("with Ollama fragments", func() {
			It("detects a message chunk", func() {
				payload := []byte(`{
					"model": "llama3.2",
					"created_at": "2024-01-01T00:00:00Z",
					"message": {"role": "assistant", "content": "Hi"},
					"done": false
				}`)

				p := detector.Detect(payload)
				Expect(p.Name()).To(Equal("ollama"))
			})

			It("detects a final chunk with total_duration", func() {
				payload := []byte(`{"model":"llama3.2","done":true,"total_duration":5000000000}`)

				p := detector.Detect(payload)
				Expect(p.Name()).To(Equal("ollama"))
			})
		})

		Context("with unknown fragments", func() {
			It("falls back to BestEffort for unrecognized format", func() {
				p := detector.Detect([]byte(`{"type":"content_block_delta","delta":{"text":"Hi"}}`))
				Expect(p.Name()).To(Equal("besteffort"))
			})

			It("falls back to BestEffort for empty JSON", func() {
				p := detector.Detect([]byte(`{}`))
				Expect(p.Name()).To(Equal("besteffort"))
			})

			It("falls back to BestEffort for invalid JSON", func() {
				p := detector.Detect([]byte(`not json at all`))
				Expect(p.Name()).To(Equal("besteffort"))
			})
		})
	})

	Describe("ParseStreamChunk", func() {
		It("parses each fragment with the provider that claims it", func() {
			fragments := []string{
				`{"choices":[{"delta":{"content":"Hello"}}]}`,
				`{"model":"llama3.2","message":{"role":"assistant","content":" from"},"done":false}`,
				`{"type":"content_block_delta","delta":{"text":" everywhere"}}`,
			}

			var content string
			for _, f := range fragments {
				chunk, err := detector.ParseStreamChunk([]byte(f))
				Expect(err).NotTo(HaveOccurred())
				Expect(chunk).NotTo(BeNil())
				content += chunk.Content
			}

			Expect(content).To(Equal("Hello from everywhere"))
		})

		It("reports itself as auto and handles anything", func() {
			Expect(detector.Name()).To(Equal(provider.Auto))
			Expect(detector.CanHandle([]byte(`garbage`))).To(BeTrue())
		})
	})
})

var _ = Describe("New", func() {
	DescribeTable("creates providers by name",
		func(name, expected string) {
			p, err := provider.New(name)
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Name()).To(Equal(expected))
		},
		Entry("openai", provider.OpenAI, "openai"),
		Entry("ollama", provider.Ollama, "ollama"),
		Entry("besteffort", provider.BestEffort, "besteffort"),
		Entry("auto", provider.Auto, "auto"),
	)

	It("rejects unknown providers", func() {
		_, err := provider.New("anthropic")
		Expect(err).To(MatchError(ContainSubstring("unknown stream format")))
	})

	It("matches names case-insensitively", func() {
		p, err := provider.New("OpenAI")
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Name()).To(Equal("openai"))
	})

	It("lists every supported provider", func() {
		Expect(provider.SupportedProviders()).To(Equal([]string{"openai", "ollama", "besteffort", "auto"}))
	})

	It("accepts exactly the formats the config allows", func() {
		Expect(provider.SupportedProviders()).To(ConsistOf(config.Formats))
	})
})
