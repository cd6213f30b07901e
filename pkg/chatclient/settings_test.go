package chatclient_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/streamchat/pkg/chatclient"
	"github.com/papercomputeco/streamchat/pkg/config"
)

var _ = Describe("FromConfig", func() {
	It("copies the client section", func() {
		cfg, err := chatclient.FromConfig(config.ClientConfig{
			Endpoint: "http://h:1",
			Path:     "/c",
			Param:    "q",
			Format:   "auto",
			Timeout:  "2s",
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg).To(Equal(chatclient.Config{
			Endpoint: "http://h:1",
			Path:     "/c",
			Param:    "q",
			Format:   "auto",
			Timeout:  2 * time.Second,
		}))
	})

	It("works with the defaults", func() {
		cfg, err := chatclient.FromConfig(config.NewDefaultConfig().Client)
		Expect(err).NotTo(HaveOccurred())

		c, err := chatclient.New(cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Endpoint()).To(Equal("http://localhost:50505/chat"))
	})

	It("rejects a bad timeout", func() {
		_, err := chatclient.FromConfig(config.ClientConfig{Timeout: "later"})
		Expect(err).To(HaveOccurred())
	})
})
