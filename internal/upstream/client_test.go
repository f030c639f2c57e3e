package upstream_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"unicode/utf8"

	"pingreport/internal/upstream"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var _ = Describe("Client", func() {
	var (
		client  *upstream.Client
		srv     *httptest.Server
		body    string
		status  int
		gotReq  *http.Request
		ctx     context.Context
		data    json.RawMessage
		err     error
		pingURL string
		logs    *observer.ObservedLogs
		logger  *zap.SugaredLogger
	)

	BeforeEach(func() {
		ctx = context.Background()
		status = http.StatusOK
		body = `{"status":"ok"}`
		gotReq = nil

		var core zapcore.Core
		core, logs = observer.New(zapcore.DebugLevel)
		logger = zap.New(core).Sugar()

		srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotReq = r
			w.WriteHeader(status)
			w.Write([]byte(body))
		}))
		DeferCleanup(srv.Close)
		pingURL = srv.URL + "/ping"
	})

	JustBeforeEach(func() {
		client = upstream.NewClient(logger, srv.Client(), pingURL)
		data, err = client.Ping(ctx)
	})

	When("the upstream returns a json object", func() {
		It("should return the body untouched", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(Equal(`{"status":"ok"}`))
		})

		It("should send a bare GET to the ping path", func() {
			Expect(gotReq).NotTo(BeNil())
			Expect(gotReq.Method).To(Equal(http.MethodGet))
			Expect(gotReq.URL.Path).To(Equal("/ping"))
			Expect(gotReq.URL.RawQuery).To(BeEmpty())
			Expect(gotReq.ContentLength).To(BeZero())
		})
	})

	When("the upstream returns an array", func() {
		BeforeEach(func() {
			body = `[1,2,3]`
		})

		It("should return the array", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(Equal(`[1,2,3]`))
		})
	})

	When("the upstream returns high precision numbers", func() {
		BeforeEach(func() {
			body = `{"big":123456789012345678901234567890,"pi":3.14159265358979323846264338327950288}`
		})

		It("should keep every digit", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(Equal(body))
		})
	})

	When("the upstream returns a json scalar", func() {
		BeforeEach(func() {
			body = `"pong"`
		})

		It("should accept it", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(Equal(`"pong"`))
		})
	})

	When("the upstream returns plain text", func() {
		BeforeEach(func() {
			body = "pong"
		})

		It("should return ErrInvalidJSON", func() {
			Expect(err).To(MatchError(upstream.ErrInvalidJSON))
			Expect(data).To(BeNil())
		})
	})

	When("the upstream returns an empty body", func() {
		BeforeEach(func() {
			body = ""
		})

		It("should return ErrInvalidJSON", func() {
			Expect(err).To(MatchError(upstream.ErrInvalidJSON))
		})
	})

	When("the upstream returns trailing data after a document", func() {
		BeforeEach(func() {
			body = `{"a":1} {"b":2}`
		})

		It("should return ErrInvalidJSON", func() {
			Expect(err).To(MatchError(upstream.ErrInvalidJSON))
		})
	})

	When("the upstream fails with a json body", func() {
		BeforeEach(func() {
			status = http.StatusInternalServerError
			body = `{"message":"Internal server error"}`
		})

		It("should still return the body", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(Equal(body))
		})

		It("should warn about the status", func() {
			entries := logs.FilterMessage("upstream answered with a non-2xx status").All()
			Expect(entries).To(HaveLen(1))
			Expect(entries[0].Level).To(Equal(zapcore.WarnLevel))

			fields := entries[0].ContextMap()
			Expect(fields["status"]).To(BeEquivalentTo(http.StatusInternalServerError))
			Expect(fields["url"]).To(Equal(pingURL))
		})
	})

	When("the upstream answers with 200", func() {
		It("should not warn", func() {
			Expect(logs.FilterLevelExact(zapcore.WarnLevel).Len()).To(BeZero())
		})
	})

	When("the upstream returns invalid utf-8 inside a string", func() {
		BeforeEach(func() {
			body = "{\"m\":\"a\xffb\"}"
		})

		It("should replace the bad bytes", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(utf8.Valid(data)).To(BeTrue())
			Expect(string(data)).To(Equal("{\"m\":\"a\uFFFDb\"}"))
		})
	})

	When("the upstream returns invalid utf-8 outside of a string", func() {
		BeforeEach(func() {
			body = "{\"m\":1}\xff"
		})

		It("should return ErrInvalidJSON", func() {
			Expect(err).To(MatchError(upstream.ErrInvalidJSON))
		})
	})

	When("nothing listens on the upstream address", func() {
		BeforeEach(func() {
			srv.Close()
		})

		It("should return an error", func() {
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("get " + pingURL))
			Expect(data).To(BeNil())
		})
	})

	When("the context is cancelled", func() {
		BeforeEach(func() {
			var cancel context.CancelFunc
			ctx, cancel = context.WithCancel(ctx)
			cancel()
		})

		It("should return context cancelled error", func() {
			Expect(err).To(MatchError(context.Canceled))
		})
	})
})
