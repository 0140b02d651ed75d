package otel_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"basegraph.app/cms/common/otel"
	"basegraph.app/cms/core/config"
)

var _ = Describe("Setup", func() {
	It("is a no-op without an endpoint", func() {
		telemetry, err := otel.Setup(context.Background(), config.OTelConfig{})
		Expect(err).NotTo(HaveOccurred())
		Expect(telemetry).To(BeNil())
	})
})

var _ = Describe("ParseHeaders", func() {
	It("splits comma separated pairs and trims them", func() {
		Expect(otel.ParseHeaders("Authorization=Bearer abc, x-team = cms,broken,=empty")).To(Equal(map[string]string{
			"Authorization": "Bearer abc",
			"x-team":        "cms",
		}))
	})

	It("keeps '=' inside values", func() {
		Expect(otel.ParseHeaders("sig=a=b")).To(HaveKeyWithValue("sig", "a=b"))
	})

	It("returns an empty map for an empty string", func() {
		Expect(otel.ParseHeaders("")).To(BeEmpty())
	})
})
