package service_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"schenkly.app/concierge/common/llm"
	"schenkly.app/concierge/internal/model"
	"schenkly.app/concierge/internal/service"
)

var _ = Describe("SuggestionService", func() {
	var (
		svc        service.SuggestionService
		mockClient *mockLLMClient
		ctx        context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		mockClient = &mockLLMClient{}
	})

	Describe("Generate", func() {
		Context("when a request field is blank", func() {
			It("should return ErrOccasionRequired for a blank occasion", func() {
				svc = service.NewSuggestionService(mockClient, 30*time.Second, 500)
				suggestions, err := svc.Generate(ctx, "   ", "50 Euro", "Lesen")

				Expect(err).To(MatchError(service.ErrOccasionRequired))
				Expect(suggestions).To(BeNil())
				Expect(mockClient.chatCalls).To(BeZero())
			})

			It("should return ErrBudgetRequired for a blank budget", func() {
				svc = service.NewSuggestionService(mockClient, 30*time.Second, 500)
				suggestions, err := svc.Generate(ctx, "Geburtstag", "", "Lesen")

				Expect(err).To(MatchError(service.ErrBudgetRequired))
				Expect(suggestions).To(BeNil())
				Expect(mockClient.chatCalls).To(BeZero())
			})

			It("should return ErrInterestsRequired for a blank interests field", func() {
				svc = service.NewSuggestionService(mockClient, 30*time.Second, 500)
				suggestions, err := svc.Generate(ctx, "Geburtstag", "50 Euro", "\n\t ")

				Expect(err).To(MatchError(service.ErrInterestsRequired))
				Expect(suggestions).To(BeNil())
				Expect(mockClient.chatCalls).To(BeZero())
			})
		})

		Context("when no llm client is configured", func() {
			It("should serve the fallback suggestions", func() {
				svc = service.NewSuggestionService(nil, 30*time.Second, 500)
				suggestions, err := svc.Generate(ctx, "Geburtstag", "50 Euro", "Lesen")

				Expect(err).NotTo(HaveOccurred())
				Expect(suggestions).To(Equal(service.FallbackSuggestions()))
			})

			It("should serve identical suggestions on every call", func() {
				svc = service.NewSuggestionService(nil, 30*time.Second, 500)

				first, err := svc.Generate(ctx, "Geburtstag", "50 Euro", "Lesen")
				Expect(err).NotTo(HaveOccurred())
				second, err := svc.Generate(ctx, "Weihnachten", "20 Euro", "Kochen")
				Expect(err).NotTo(HaveOccurred())

				Expect(first).To(Equal(second))
			})

			It("should still validate request fields", func() {
				svc = service.NewSuggestionService(nil, 30*time.Second, 500)
				suggestions, err := svc.Generate(ctx, "", "50 Euro", "Lesen")

				Expect(err).To(MatchError(service.ErrOccasionRequired))
				Expect(suggestions).To(BeNil())
			})
		})

		Context("when the model returns valid suggestions", func() {
			It("should return them in model order", func() {
				mockClient.chatFn = func(_ context.Context, _ llm.Request, result any) (*llm.Response, error) {
					err := respondWith(`{
						"suggestions": [
							{"name": "Kochbuch", "description": "Rezepte für jeden Tag.", "search_term": "Kochbuch Anfänger"},
							{"name": "Gewürzset", "description": "Zwölf Gewürze aus aller Welt.", "search_term": "Gewürzset Geschenk"},
							{"name": "Schürze", "description": "Robuste Leinenschürze.", "search_term": "Kochschürze Leinen"}
						]
					}`, result)
					return &llm.Response{PromptTokens: 120, CompletionTokens: 80}, err
				}

				svc = service.NewSuggestionService(mockClient, 30*time.Second, 500)
				suggestions, err := svc.Generate(ctx, "Geburtstag", "50 Euro", "Kochen")

				Expect(err).NotTo(HaveOccurred())
				Expect(suggestions).To(Equal([]model.Suggestion{
					{Name: "Kochbuch", Description: "Rezepte für jeden Tag.", SearchTerm: "Kochbuch Anfänger"},
					{Name: "Gewürzset", Description: "Zwölf Gewürze aus aller Welt.", SearchTerm: "Gewürzset Geschenk"},
					{Name: "Schürze", Description: "Robuste Leinenschürze.", SearchTerm: "Kochschürze Leinen"},
				}))
			})

			It("should build the user prompt from the request fields", func() {
				var captured llm.Request
				mockClient.chatFn = func(_ context.Context, req llm.Request, result any) (*llm.Response, error) {
					captured = req
					err := respondWith(`{"suggestions": [{"name": "Kochbuch", "description": "Rezepte.", "search_term": "Kochbuch"}]}`, result)
					return &llm.Response{}, err
				}

				svc = service.NewSuggestionService(mockClient, 30*time.Second, 500)
				_, err := svc.Generate(ctx, "Geburtstag", "50 Euro", "Kochen und Backen")

				Expect(err).NotTo(HaveOccurred())
				Expect(captured.UserPrompt).To(Equal("Anlass: Geburtstag\nBudget: 50 Euro\nInteressen: Kochen und Backen\nErstelle drei passende Geschenkvorschläge."))
				Expect(captured.SystemPrompt).To(ContainSubstring("Geschenkberater"))
				Expect(captured.SchemaName).To(Equal("gift_suggestions"))
				Expect(captured.Schema).NotTo(BeNil())
				Expect(captured.MaxTokens).To(Equal(500))
				Expect(captured.Temperature).NotTo(BeNil())
				Expect(*captured.Temperature).To(Equal(0.7))
			})

			It("should collapse whitespace in request fields before prompting", func() {
				var captured llm.Request
				mockClient.chatFn = func(_ context.Context, req llm.Request, result any) (*llm.Response, error) {
					captured = req
					err := respondWith(`{"suggestions": [{"name": "Kochbuch", "description": "Rezepte.", "search_term": "Kochbuch"}]}`, result)
					return &llm.Response{}, err
				}

				svc = service.NewSuggestionService(mockClient, 30*time.Second, 500)
				_, err := svc.Generate(ctx, "  Geburtstag\n", " 50   Euro ", "Kochen \t und Backen")

				Expect(err).NotTo(HaveOccurred())
				Expect(captured.UserPrompt).To(ContainSubstring("Anlass: Geburtstag\n"))
				Expect(captured.UserPrompt).To(ContainSubstring("Budget: 50 Euro\n"))
				Expect(captured.UserPrompt).To(ContainSubstring("Interessen: Kochen und Backen\n"))
			})

			It("should bound the model call with a deadline", func() {
				var hasDeadline bool
				mockClient.chatFn = func(chatCtx context.Context, _ llm.Request, result any) (*llm.Response, error) {
					_, hasDeadline = chatCtx.Deadline()
					err := respondWith(`{"suggestions": [{"name": "Kochbuch", "description": "Rezepte.", "search_term": "Kochbuch"}]}`, result)
					return &llm.Response{}, err
				}

				svc = service.NewSuggestionService(mockClient, 5*time.Second, 500)
				_, err := svc.Generate(ctx, "Geburtstag", "50 Euro", "Kochen")

				Expect(err).NotTo(HaveOccurred())
				Expect(hasDeadline).To(BeTrue())
			})

			It("should call the model exactly once", func() {
				mockClient.chatFn = func(_ context.Context, _ llm.Request, result any) (*llm.Response, error) {
					err := respondWith(`{"suggestions": [{"name": "Kochbuch", "description": "Rezepte.", "search_term": "Kochbuch"}]}`, result)
					return &llm.Response{}, err
				}

				svc = service.NewSuggestionService(mockClient, 30*time.Second, 500)
				_, err := svc.Generate(ctx, "Geburtstag", "50 Euro", "Kochen")

				Expect(err).NotTo(HaveOccurred())
				Expect(mockClient.chatCalls).To(Equal(1))
			})
		})

		Context("when the model returns partially invalid suggestions", func() {
			It("should drop items with missing fields and keep the rest", func() {
				mockClient.chatFn = func(_ context.Context, _ llm.Request, result any) (*llm.Response, error) {
					err := respondWith(`{
						"suggestions": [
							{"name": "Kochbuch", "description": "Rezepte für jeden Tag.", "search_term": "Kochbuch Anfänger"},
							{"name": "Gewürzset", "description": "Zwölf Gewürze.", "search_term": ""},
							{"name": "   ", "description": "Robuste Leinenschürze.", "search_term": "Kochschürze"}
						]
					}`, result)
					return &llm.Response{}, err
				}

				svc = service.NewSuggestionService(mockClient, 30*time.Second, 500)
				suggestions, err := svc.Generate(ctx, "Geburtstag", "50 Euro", "Kochen")

				Expect(err).NotTo(HaveOccurred())
				Expect(suggestions).To(Equal([]model.Suggestion{
					{Name: "Kochbuch", Description: "Rezepte für jeden Tag.", SearchTerm: "Kochbuch Anfänger"},
				}))
			})

			It("should trim whitespace from kept items", func() {
				mockClient.chatFn = func(_ context.Context, _ llm.Request, result any) (*llm.Response, error) {
					err := respondWith(`{
						"suggestions": [
							{"name": "  Kochbuch  ", "description": " Rezepte. ", "search_term": " Kochbuch "}
						]
					}`, result)
					return &llm.Response{}, err
				}

				svc = service.NewSuggestionService(mockClient, 30*time.Second, 500)
				suggestions, err := svc.Generate(ctx, "Geburtstag", "50 Euro", "Kochen")

				Expect(err).NotTo(HaveOccurred())
				Expect(suggestions).To(Equal([]model.Suggestion{
					{Name: "Kochbuch", Description: "Rezepte.", SearchTerm: "Kochbuch"},
				}))
			})
		})

		Context("when no generated item is usable", func() {
			It("should serve the fallback suggestions for an empty list", func() {
				mockClient.chatFn = func(_ context.Context, _ llm.Request, result any) (*llm.Response, error) {
					err := respondWith(`{"suggestions": []}`, result)
					return &llm.Response{}, err
				}

				svc = service.NewSuggestionService(mockClient, 30*time.Second, 500)
				suggestions, err := svc.Generate(ctx, "Geburtstag", "50 Euro", "Kochen")

				Expect(err).NotTo(HaveOccurred())
				Expect(suggestions).To(Equal(service.FallbackSuggestions()))
			})

			It("should serve the fallback suggestions when every item is incomplete", func() {
				mockClient.chatFn = func(_ context.Context, _ llm.Request, result any) (*llm.Response, error) {
					err := respondWith(`{
						"suggestions": [
							{"name": "", "description": "Rezepte.", "search_term": "Kochbuch"},
							{"name": "Gewürzset", "description": "", "search_term": "Gewürzset"}
						]
					}`, result)
					return &llm.Response{}, err
				}

				svc = service.NewSuggestionService(mockClient, 30*time.Second, 500)
				suggestions, err := svc.Generate(ctx, "Geburtstag", "50 Euro", "Kochen")

				Expect(err).NotTo(HaveOccurred())
				Expect(suggestions).To(Equal(service.FallbackSuggestions()))
			})
		})

		Context("when the model call fails", func() {
			It("should serve the fallback suggestions without an error", func() {
				mockClient.chatFn = func(_ context.Context, _ llm.Request, _ any) (*llm.Response, error) {
					return nil, errors.New("rate limited")
				}

				svc = service.NewSuggestionService(mockClient, 30*time.Second, 500)
				suggestions, err := svc.Generate(ctx, "Geburtstag", "50 Euro", "Kochen")

				Expect(err).NotTo(HaveOccurred())
				Expect(suggestions).To(Equal(service.FallbackSuggestions()))
			})

			It("should serve the fallback suggestions on timeout", func() {
				mockClient.chatFn = func(_ context.Context, _ llm.Request, _ any) (*llm.Response, error) {
					return nil, context.DeadlineExceeded
				}

				svc = service.NewSuggestionService(mockClient, 30*time.Second, 500)
				suggestions, err := svc.Generate(ctx, "Geburtstag", "50 Euro", "Kochen")

				Expect(err).NotTo(HaveOccurred())
				Expect(suggestions).To(Equal(service.FallbackSuggestions()))
			})
		})
	})
})
