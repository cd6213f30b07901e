package chatcmder

import (
	"bytes"
	"os"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	testutils "github.com/papercomputeco/streamchat/pkg/utils/test"
)

var _ = Describe("NewChatCmd", func() {
	It("creates a command with the correct use string", func() {
		cmd := NewChatCmd()
		Expect(cmd.Use).To(Equal("chat"))
	})

	It("registers the client flags", func() {
		cmd := NewChatCmd()
		for _, name := range []string{"endpoint", "path", "param", "format", "timeout", "output", "style"} {
			Expect(cmd.Flags().Lookup(name)).NotTo(BeNil(), name)
		}
		Expect(cmd.Flags().Lookup("endpoint").Shorthand).To(Equal("e"))
	})

	It("rejects arguments", func() {
		cmd := NewChatCmd()
		Expect(cmd.Args(cmd, []string{"hello"})).To(HaveOccurred())
	})
})

var _ = Describe("Line mode", func() {
	var (
		server  *testutils.ChatServer
		tmpDir  string
		origDir string
		out     *bytes.Buffer
		errOut  *bytes.Buffer
	)

	run := func(input string, args ...string) error {
		cmd := NewChatCmd()
		cmd.SilenceUsage = true
		cmd.Flags().Bool("debug", false, "")
		cmd.Flags().String("config-dir", "", "")
		cmd.SetIn(strings.NewReader(input))
		cmd.SetOut(out)
		cmd.SetErr(errOut)
		cmd.SetArgs(append([]string{"--endpoint", server.URL, "--output", "plain"}, args...))
		return cmd.Execute()
	}

	BeforeEach(func() {
		server = testutils.NewChatServer()

		var err error
		tmpDir, err = os.MkdirTemp("", "streamchat-chat-test-*")
		Expect(err).NotTo(HaveOccurred())
		origDir, err = os.Getwd()
		Expect(err).NotTo(HaveOccurred())
		Expect(os.Chdir(tmpDir)).To(Succeed())
		GinkgoT().Setenv("HOME", tmpDir)

		out = &bytes.Buffer{}
		errOut = &bytes.Buffer{}
	})

	AfterEach(func() {
		server.Close()
		Expect(os.Chdir(origDir)).To(Succeed())
		os.RemoveAll(tmpDir)
	})

	It("sends each line and streams the reply", func() {
		server.Reply(testutils.Fragment("Hi"), testutils.Fragment(" there"))
		server.Reply(testutils.Fragment("Bye"))

		Expect(run("hello\ngoodbye\n")).To(Succeed())

		Expect(server.Messages()).To(Equal([]string{"hello", "goodbye"}))
		Expect(out.String()).To(ContainSubstring("Hi there"))
		Expect(out.String()).To(ContainSubstring("Bye"))
	})

	It("prints each HTML reply once", func() {
		server.Reply(testutils.Fragment("Hi"), testutils.Fragment(" there"), testutils.Fragment(" friend"))

		Expect(run("hello\n", "--output", "html")).To(Succeed())
		Expect(strings.Count(out.String(), "<p>")).To(Equal(1))
		Expect(out.String()).To(ContainSubstring("<p>Hi there friend</p>"))
	})

	It("skips blank lines and stops at /exit", func() {
		server.Reply(testutils.Fragment("ok"))

		Expect(run("\n   \nfirst\n/exit\nnever sent\n")).To(Succeed())
		Expect(server.Messages()).To(Equal([]string{"first"}))
	})

	It("keeps going after a failed message and reports the failure", func() {
		server.ReplyStatus(500, "boom")
		server.Reply(testutils.Fragment("recovered"))

		err := run("one\ntwo\n")
		Expect(err).To(MatchError(ContainSubstring("1 of 2 messages failed")))
		Expect(errOut.String()).To(ContainSubstring("500"))
		Expect(out.String()).To(ContainSubstring("recovered"))
	})

	It("reports in-band server errors", func() {
		server.Reply(`{"error":"rate limited"}` + "\n")

		Expect(run("hello\n")).To(Succeed())
		Expect(errOut.String()).To(ContainSubstring("rate limited"))
	})
})
