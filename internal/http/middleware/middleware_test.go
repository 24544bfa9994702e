package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strconv"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"schenkly.app/concierge/common/id"
	"schenkly.app/concierge/internal/http/middleware"
)

var _ = Describe("RequestID", func() {
	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		err := id.Init(1)
		Expect(err).NotTo(HaveOccurred())
	})

	It("sets a numeric request id header", func() {
		router := gin.New()
		router.Use(middleware.RequestID())
		router.GET("/ping", func(c *gin.Context) {
			c.String(http.StatusOK, "pong")
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		header := w.Header().Get(middleware.RequestIDHeader)
		Expect(header).NotTo(BeEmpty())
		_, err := strconv.ParseInt(header, 10, 64)
		Expect(err).NotTo(HaveOccurred())
	})

	It("assigns distinct ids to consecutive requests", func() {
		router := gin.New()
		router.Use(middleware.RequestID())
		router.GET("/ping", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		first := httptest.NewRecorder()
		router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/ping", nil))
		second := httptest.NewRecorder()
		router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/ping", nil))

		Expect(first.Header().Get(middleware.RequestIDHeader)).NotTo(
			Equal(second.Header().Get(middleware.RequestIDHeader)))
	})
})

var _ = Describe("Recovery", func() {
	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
	})

	It("turns a panic into a JSON 500", func() {
		router := gin.New()
		router.Use(middleware.Recovery())
		router.GET("/boom", func(_ *gin.Context) {
			panic("kaputt")
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		Expect(w.Body.String()).To(ContainSubstring("internal server error"))
	})
})

var _ = Describe("Logger", func() {
	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
	})

	It("does not alter the response", func() {
		router := gin.New()
		router.Use(middleware.Logger())
		router.GET("/ping", func(c *gin.Context) {
			c.String(http.StatusOK, "pong")
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(Equal("pong"))
	})
})
