package configcmder_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	configcmder "github.com/papercomputeco/streamchat/cmd/streamchat/config"
)

var _ = Describe("NewConfigCmd", func() {
	It("creates a command with the correct use string", func() {
		cmd := configcmder.NewConfigCmd()
		Expect(cmd.Use).To(Equal("config"))
	})

	It("has set, get, and list subcommands", func() {
		cmd := configcmder.NewConfigCmd()
		cmds := cmd.Commands()
		subcommands := make([]string, 0, len(cmds))
		for _, sub := range cmds {
			subcommands = append(subcommands, sub.Name())
		}
		Expect(subcommands).To(ContainElements("set", "get", "list"))
	})
})

var _ = Describe("Config command execution", func() {
	var (
		tmpDir  string
		origDir string
		out     *bytes.Buffer
	)

	run := func(args ...string) error {
		cmd := configcmder.NewConfigCmd()
		cmd.SetOut(out)
		cmd.SetErr(out)
		cmd.SetArgs(args)
		return cmd.Execute()
	}

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "streamchat-config-test-*")
		Expect(err).NotTo(HaveOccurred())

		origDir, err = os.Getwd()
		Expect(err).NotTo(HaveOccurred())

		// Create a local .streamchat dir so the manager picks it up
		err = os.MkdirAll(filepath.Join(tmpDir, ".streamchat"), 0o755)
		Expect(err).NotTo(HaveOccurred())

		err = os.Chdir(tmpDir)
		Expect(err).NotTo(HaveOccurred())

		out = &bytes.Buffer{}
	})

	AfterEach(func() {
		err := os.Chdir(origDir)
		Expect(err).NotTo(HaveOccurred())
		os.RemoveAll(tmpDir)
	})

	Describe("set subcommand", func() {
		It("sets a config value successfully", func() {
			Expect(run("set", "client.endpoint", "http://localhost:8000")).To(Succeed())

			data, err := os.ReadFile(filepath.Join(tmpDir, ".streamchat", "config.toml"))
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(ContainSubstring(`endpoint = "http://localhost:8000"`))
			Expect(out.String()).To(ContainSubstring("client.endpoint"))
		})

		It("rejects unknown keys", func() {
			Expect(run("set", "invalid_key", "value")).To(HaveOccurred())
		})

		It("requires exactly two arguments", func() {
			Expect(run("set", "client.endpoint")).To(HaveOccurred())
		})

		It("rejects zero arguments", func() {
			Expect(run("set")).To(HaveOccurred())
		})

		It("rejects invalid uint values", func() {
			Expect(run("set", "render.width", "wide")).To(HaveOccurred())
		})

		It("rejects invalid durations", func() {
			Expect(run("set", "client.timeout", "soon")).To(HaveOccurred())
		})

		It("rejects invalid booleans", func() {
			Expect(run("set", "render.gfm", "maybe")).To(HaveOccurred())
		})

		It("rejects an unknown stream format", func() {
			err := run("set", "client.format", "sse")
			Expect(err).To(MatchError(ContainSubstring("expected one of")))

			_, statErr := os.Stat(filepath.Join(tmpDir, ".streamchat", "config.toml"))
			Expect(os.IsNotExist(statErr)).To(BeTrue())
		})
	})

	Describe("get subcommand", func() {
		It("gets a previously set value", func() {
			Expect(run("set", "client.format", "ollama")).To(Succeed())

			out.Reset()
			Expect(run("get", "client.format")).To(Succeed())
			Expect(out.String()).To(ContainSubstring("ollama"))
		})

		It("reports the default for an unset key", func() {
			Expect(run("get", "client.path")).To(Succeed())
			Expect(out.String()).To(ContainSubstring("/chat"))
		})

		It("rejects unknown keys", func() {
			Expect(run("get", "invalid_key")).To(HaveOccurred())
		})

		It("requires exactly one argument", func() {
			Expect(run("get")).To(HaveOccurred())
		})
	})

	Describe("list subcommand", func() {
		It("runs without error when no config exists", func() {
			Expect(run("list")).To(Succeed())
			Expect(out.String()).To(ContainSubstring("client.endpoint"))
			Expect(out.String()).To(ContainSubstring("log.json"))
		})

		It("shows values that were set", func() {
			Expect(run("set", "render.output", "plain")).To(Succeed())

			out.Reset()
			Expect(run("list")).To(Succeed())
			Expect(out.String()).To(ContainSubstring(`"plain"`))
		})

		It("marks keys still at their default", func() {
			Expect(run("set", "render.output", "plain")).To(Succeed())

			out.Reset()
			Expect(run("list")).To(Succeed())

			var outputLine, pathLine string
			for _, line := range strings.Split(out.String(), "\n") {
				switch {
				case strings.Contains(line, "render.output"):
					outputLine = line
				case strings.Contains(line, "client.path"):
					pathLine = line
				}
			}
			Expect(outputLine).NotTo(ContainSubstring("(default)"))
			Expect(pathLine).To(ContainSubstring(`"/chat"`))
			Expect(pathLine).To(ContainSubstring("(default)"))
		})

		It("rejects any arguments", func() {
			Expect(run("list", "extra")).To(HaveOccurred())
		})
	})
})
