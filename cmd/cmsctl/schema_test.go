package main

import (
	"bytes"
	"context"
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("schema command", func() {
	run := func(args ...string) (string, error) {
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetArgs(args)
		err := rootCmd.ExecuteContext(context.Background())
		return out.String(), err
	}

	It("prints the create schema with camelCase properties", func() {
		out, err := run("schema", "partners")
		Expect(err).NotTo(HaveOccurred())

		var doc struct {
			Title      string                     `json:"title"`
			Properties map[string]json.RawMessage `json:"properties"`
			Required   []string                   `json:"required"`
		}
		Expect(json.Unmarshal([]byte(out), &doc)).To(Succeed())
		Expect(doc.Title).To(Equal("partners"))
		Expect(doc.Properties).To(HaveKey("logoUrl"))
		Expect(doc.Properties).To(HaveKey("sortOrder"))
		Expect(doc.Required).To(ContainElements("name", "logoUrl"))
		Expect(doc.Required).NotTo(ContainElement("websiteUrl"))
	})

	It("never includes the password hash in the user schema", func() {
		out, err := run("schema", "users")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring(`"password"`))
		Expect(out).NotTo(ContainSubstring("passwordHash"))
	})

	It("fails for unknown resources", func() {
		_, err := run("schema", "widgets")
		Expect(err).To(MatchError(ContainSubstring("unknown resource")))
	})
})
