package chatclient_test

import (
	"bytes"
	"context"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/streamchat/pkg/chatclient"
	"github.com/papercomputeco/streamchat/pkg/llm"
	"github.com/papercomputeco/streamchat/pkg/render"
	testutils "github.com/papercomputeco/streamchat/pkg/utils/test"
)

var _ = Describe("Writer", func() {
	var buf *bytes.Buffer

	BeforeEach(func() {
		buf = &bytes.Buffer{}
	})

	It("prints only the new suffix of an extending rendering", func() {
		w := chatclient.NewWriter(buf, "hello")
		user, _ := w.Append(llm.RoleUser)
		user.SetContent("hello")

		reply, _ := w.Append(llm.RoleAssistant)
		reply.SetContent("")
		reply.SetContent("Hi")
		reply.SetContent("Hi there")
		w.ClearInput()

		Expect(buf.String()).To(Equal("you> hello\nassistant> Hi there\n"))
		Expect(w.Input()).To(BeEmpty())
	})

	It("reprints a rendering that does not extend the previous one", func() {
		w := chatclient.NewWriter(buf, "", chatclient.WithPrefixes("> ", "< "))
		reply, _ := w.Append(llm.RoleAssistant)
		reply.SetContent("<p>Hi</p>")
		reply.SetContent("<p>Hi there</p>")
		w.ClearInput()

		Expect(buf.String()).To(Equal("< <p>Hi</p>\n<p>Hi there</p>\n"))
	})

	It("does not add a blank line after a rendering ending in a newline", func() {
		w := chatclient.NewWriter(buf, "")
		reply, _ := w.Append(llm.RoleAssistant)
		reply.SetContent("done\n")
		w.ClearInput()

		Expect(buf.String()).To(Equal("assistant> done\n"))
	})

	It("streams a full turn from a client", func() {
		server := testutils.NewChatServer()
		DeferCleanup(server.Close)
		server.Reply(testutils.Fragment("Hi"), testutils.Fragment(" there"))

		client, err := chatclient.New(chatclient.Config{Endpoint: server.URL}, chatclient.WithRenderer(render.NewPlain()))
		Expect(err).NotTo(HaveOccurred())

		w := chatclient.NewWriter(buf, "hello")
		_, err = client.Submit(context.Background(), w)
		Expect(err).NotTo(HaveOccurred())
		Expect(buf.String()).To(Equal("you> hello\nassistant> Hi there\n"))
	})
})

var _ = Describe("Writer without user echo", func() {
	It("prints only the reply", func() {
		var buf bytes.Buffer
		w := chatclient.NewWriter(&buf, "q", chatclient.WithPrefixes("", ""), chatclient.WithoutUserEcho())
		user, _ := w.Append(llm.RoleUser)
		user.SetContent("q")
		reply, _ := w.Append(llm.RoleAssistant)
		reply.SetContent("answer")
		w.ClearInput()

		Expect(buf.String()).To(Equal("answer\n"))
	})
})

var _ = Describe("Writer with final rendering", func() {
	var buf *bytes.Buffer

	BeforeEach(func() {
		buf = &bytes.Buffer{}
	})

	It("prints an HTML reply once when the turn ends", func() {
		server := testutils.NewChatServer()
		DeferCleanup(server.Close)
		server.Reply(testutils.Fragment("Hi"), testutils.Fragment(" there"), testutils.Fragment(" friend"))

		client, err := chatclient.New(chatclient.Config{Endpoint: server.URL}, chatclient.WithRenderer(render.NewHTML()))
		Expect(err).NotTo(HaveOccurred())

		w := chatclient.NewWriter(buf, "hello", chatclient.WithFinalRendering())
		_, err = client.Submit(context.Background(), w)
		Expect(err).NotTo(HaveOccurred())

		Expect(strings.Count(buf.String(), "<p>")).To(Equal(1))
		Expect(buf.String()).To(Equal("you> hello\nassistant> <p>Hi there friend</p>\n"))
	})

	It("holds the reply back until the input is cleared", func() {
		w := chatclient.NewWriter(buf, "", chatclient.WithPrefixes("", "< "), chatclient.WithFinalRendering())
		reply, _ := w.Append(llm.RoleAssistant)
		reply.SetContent("<p>Hi</p>")
		reply.SetContent("<p>Hi there</p>")
		Expect(buf.String()).To(BeEmpty())

		w.ClearInput()
		Expect(buf.String()).To(Equal("< <p>Hi there</p>\n"))
	})

	It("carries several turns when the input is replaced", func() {
		server := testutils.NewChatServer()
		DeferCleanup(server.Close)
		server.Reply(testutils.Fragment("one"))
		server.Reply(testutils.Fragment("two"))

		client, err := chatclient.New(chatclient.Config{Endpoint: server.URL}, chatclient.WithRenderer(render.NewHTML()))
		Expect(err).NotTo(HaveOccurred())

		w := chatclient.NewWriter(buf, "", chatclient.WithPrefixes("", ""), chatclient.WithoutUserEcho(), chatclient.WithFinalRendering())
		for _, msg := range []string{"first", "second"} {
			w.SetInput(msg)
			_, err = client.Submit(context.Background(), w)
			Expect(err).NotTo(HaveOccurred())
		}

		Expect(server.Messages()).To(Equal([]string{"first", "second"}))
		Expect(buf.String()).To(Equal("<p>one</p>\n<p>two</p>\n"))
	})
})
