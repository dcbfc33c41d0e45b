// Package api exposes the actor over HTTP. Every actor method is a
// POST /api/rpc/<method> taking a JSON body; a handful of plain routes
// cover downloads, exports, events, the webhook and the public site.
package api

import (
	"log"

	"partnerhub/internal/chatbot"
	"partnerhub/internal/health"
	"partnerhub/internal/metrics"
	"partnerhub/internal/ratelimit"
	"partnerhub/internal/service"
	"partnerhub/internal/site"
	"partnerhub/internal/webhook"
	"partnerhub/internal/ws"
	wire "partnerhub/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Deps struct {
	Service    *service.Service
	Hub        *ws.Hub
	Site       *site.Site
	Health     health.Report
	AdminToken string
	// PublicRatePerMin caps contact form posts and uploads per client IP.
	// Zero disables the limit.
	PublicRatePerMin int
	// TrustedProxies lists the proxies whose X-Forwarded-For is believed
	// when keying the rate limit. Empty means the socket peer is the client.
	TrustedProxies []string
	// Metrics mounts /metrics when set.
	Metrics bool
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.Default()
	if err := r.SetTrustedProxies(d.TrustedProxies); err != nil {
		log.Printf("Warning: invalid trusted proxies %v, trusting none: %v", d.TrustedProxies, err)
		r.SetTrustedProxies(nil)
	}
	r.Use(CORS())
	r.Use(metrics.Instrument())

	hooks := webhook.NewHandler(d.Service)
	r.GET("/webhook", hooks.VerifyWebhook)
	r.POST("/webhook", hooks.HandleMessage)

	if d.Metrics {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	self := d.Service.SelfNumber()
	public := NewPublicHandler(d.Health, chatbot.Bot{WhatsAppLink: site.WhatsAppURL(self, site.DefaultGreeting)}, self)
	r.GET("/api/health", public.GetHealth)
	r.GET("/api/chatbot/:intent", public.GetChatbotNode)
	r.GET("/api/whatsapp/qr.png", public.GetWhatsAppQR)

	dashboard := NewDashboardHandler(d.Service)
	contacts := NewContactHandler(d.Service)
	broadcast := NewBroadcastHandler(d.Service)
	whatsapp := NewWhatsAppHandler(d.Service)
	account := NewAccountHandler(d.Service)
	documents := NewDocumentHandler(d.Service)

	api := r.Group("/api")
	api.Use(Authenticate(d.AdminToken, d.Service))
	{
		if d.Hub != nil {
			api.GET("/events", func(c *gin.Context) { d.Hub.ServeWs(c.Writer, c.Request) })
		}
		api.GET("/documents/:id/content", documents.DownloadDocument)
		api.GET("/submissions/export", contacts.ExportSubmissions)
	}

	limiter := ratelimit.PerMinute(d.PublicRatePerMin)

	rpc := api.Group("/rpc")
	{
		// Messages
		rpc.POST("/getAllWhatsAppMessages", dashboard.GetMessages)
		rpc.POST("/sendWhatsAppMessage", dashboard.SendMessage)
		rpc.POST("/sendWhatsAppMessageViaAPI", dashboard.SendViaAPI)

		// Recipients
		rpc.POST("/listRecipients", contacts.ListRecipients)
		rpc.POST("/getRecipient", contacts.GetRecipient)
		rpc.POST("/addRecipient", contacts.AddRecipient)
		rpc.POST("/removeRecipient", contacts.RemoveRecipient)

		// Contact form
		rpc.POST("/submitContactForm", RateLimit(limiter, "submitContactForm"), contacts.SubmitContactForm)
		rpc.POST("/getAllContactFormSubmissions", contacts.ListSubmissions)

		// Templates and schedules
		rpc.POST("/getAllTemplates", broadcast.GetTemplates)
		rpc.POST("/getTemplate", broadcast.GetTemplate)
		rpc.POST("/createTemplate", broadcast.CreateTemplate)
		rpc.POST("/updateTemplate", broadcast.UpdateTemplate)
		rpc.POST("/deleteTemplate", broadcast.DeleteTemplate)
		rpc.POST("/listMetaTemplates", broadcast.GetTemplatesFromMeta)
		rpc.POST("/scheduleMessage", broadcast.ScheduleMessage)
		rpc.POST("/getAllSchedules", broadcast.Schedules(""))
		rpc.POST("/getAllImmediateSchedules", broadcast.Schedules(wire.ScheduleImmediate))
		rpc.POST("/getAllDailySchedules", broadcast.Schedules(wire.ScheduleDaily))
		rpc.POST("/getSchedule", broadcast.GetSchedule)
		rpc.POST("/deleteSchedule", broadcast.DeleteSchedule)

		// Meta integration
		rpc.POST("/getMetaApiConfig", whatsapp.GetConfig)
		rpc.POST("/updateMetaApiConfig", whatsapp.UpdateConfig)
		rpc.POST("/getWhatsAppAccountDetails", whatsapp.GetAccountDetails)
		rpc.POST("/getWhatsAppIntegrationStatus", whatsapp.GetIntegrationStatus)
		rpc.POST("/getWhatsAppTokenStatus", whatsapp.GetTokenStatus)
		rpc.POST("/hasAtLeastOnePhoneNumberAttached", whatsapp.GetPhoneNumberStatus)
		rpc.POST("/verifyMetaWebhook", whatsapp.VerifyWebhook)
		rpc.POST("/getWebhookVerificationStats", whatsapp.GetWebhookStats)

		// Documents
		rpc.POST("/uploadDocument", RateLimit(limiter, "uploadDocument"), documents.UploadDocument)
		rpc.POST("/getAllSubmittedDocuments", documents.ListDocuments)
		rpc.POST("/getOnboardingRequirements", account.GetOnboardingRequirements)

		// Users
		rpc.POST("/getCallerUserProfile", account.GetCallerProfile)
		rpc.POST("/saveCallerUserProfile", account.SaveCallerProfile)
		rpc.POST("/getUserProfile", account.GetUserProfile)
		rpc.POST("/getCallerUserRole", account.GetCallerRole)
		rpc.POST("/isCallerAdmin", account.IsCallerAdmin)
		rpc.POST("/assignCallerUserRole", account.AssignRole)

		// Site content
		rpc.POST("/getAllFAQs", account.GetFAQs)
		rpc.POST("/addFAQ", account.AddFAQ)
		rpc.POST("/getAllPartnerBenefits", account.GetBenefits)
		rpc.POST("/addPartnerBenefit", account.AddBenefit)
		rpc.POST("/getOfficeContactData", account.GetOfficeContact)
		rpc.POST("/updateOfficeContactData", account.UpdateOfficeContact)
	}

	if d.Site != nil {
		r.NoRoute(d.Site.Handle)
	}
	return r
}
