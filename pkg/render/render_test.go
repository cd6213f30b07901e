package render_test

import (
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/streamchat/pkg/render"
)

var _ = Describe("MarkdownToHTML", func() {
	It("wraps text in a paragraph", func() {
		Expect(render.MarkdownToHTML("Hi there")).To(Equal("<p>Hi there</p>\n"))
	})

	It("renders emphasis and code", func() {
		out := render.MarkdownToHTML("**bold** and `code`")
		Expect(out).To(Equal("<p><strong>bold</strong> and <code>code</code></p>\n"))
	})

	It("renders fenced code blocks", func() {
		out := render.MarkdownToHTML("```go\nfmt.Println(1)\n```")
		Expect(out).To(ContainSubstring(`<pre><code class="language-go">`))
	})

	It("returns an empty string for empty input", func() {
		Expect(render.MarkdownToHTML("")).To(BeEmpty())
	})

	It("omits raw HTML", func() {
		out := render.MarkdownToHTML("<script>alert(1)</script>")
		Expect(out).NotTo(ContainSubstring("<script>"))
	})

	It("does not apply GFM extensions", func() {
		Expect(render.MarkdownToHTML("~~gone~~")).NotTo(ContainSubstring("<del>"))
	})

	It("is idempotent", func() {
		text := "# Title\n\n- one\n- two\n\n> quote"
		first := render.MarkdownToHTML(text)
		for range 5 {
			Expect(render.MarkdownToHTML(text)).To(Equal(first))
		}
	})

	It("is safe for concurrent use", func() {
		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer GinkgoRecover()
				defer wg.Done()
				Expect(render.MarkdownToHTML("*x*")).To(Equal("<p><em>x</em></p>\n"))
			}()
		}
		wg.Wait()
	})
})

var _ = Describe("HTML renderer", func() {
	It("matches MarkdownToHTML without options", func() {
		out, err := render.NewHTML().Render("Hi **there**")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal(render.MarkdownToHTML("Hi **there**")))
	})

	It("renders strikethrough and tables with GFM", func() {
		r := render.NewHTML(render.WithGFM())

		out, err := r.Render("~~gone~~")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("<del>gone</del>"))

		out, err = r.Render("| a |\n|---|\n| 1 |")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("<table>"))
	})

	It("strips unsafe attributes when sanitizing", func() {
		r := render.NewHTML(render.WithSanitize())
		out, err := r.Render("[click](javascript:alert(1))")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).NotTo(ContainSubstring("javascript:"))
		Expect(out).To(ContainSubstring("click"))
	})
})

var _ = Describe("Terminal renderer", func() {
	It("renders markdown without terminal styling in notty mode", func() {
		r, err := render.NewTerminal(render.WithStyle("notty"), render.WithWordWrap(40))
		Expect(err).NotTo(HaveOccurred())

		out, err := r.Render("Hello world")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("Hello world"))
	})

	It("fails for an unknown style file", func() {
		_, err := render.NewTerminal(render.WithStyle("/does/not/exist.json"))
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("New", func() {
	DescribeTable("resolves output modes",
		func(mode, input, expected string) {
			r, err := render.New(mode, render.Options{Style: "notty"})
			Expect(err).NotTo(HaveOccurred())
			out, err := r.Render(input)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring(expected))
		},
		Entry("html", render.ModeHTML, "*x*", "<em>x</em>"),
		Entry("terminal", render.ModeTerminal, "plain words", "plain words"),
		Entry("plain", render.ModePlain, "*x*", "*x*"),
	)

	It("rejects unknown modes", func() {
		_, err := render.New("pdf", render.Options{})
		Expect(err).To(MatchError(ContainSubstring("unknown output mode")))
	})
})
