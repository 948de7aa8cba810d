package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	catalogcontrollers "github.com/sellgrid/sellermock/api/controllers/catalog"
	feedcontrollers "github.com/sellgrid/sellermock/api/controllers/feeds"
	feescontrollers "github.com/sellgrid/sellermock/api/controllers/fees"
	healthcontrollers "github.com/sellgrid/sellermock/api/controllers/health"
	inventorycontrollers "github.com/sellgrid/sellermock/api/controllers/inventory"
	invoicecontrollers "github.com/sellgrid/sellermock/api/controllers/invoices"
	listingcontrollers "github.com/sellgrid/sellermock/api/controllers/listings"
	messagingcontrollers "github.com/sellgrid/sellermock/api/controllers/messaging"
	ordercontrollers "github.com/sellgrid/sellermock/api/controllers/orders"
	salescontrollers "github.com/sellgrid/sellermock/api/controllers/sales"
	"github.com/sellgrid/sellermock/api/middleware"
	catalogsvc "github.com/sellgrid/sellermock/internal/catalog"
	feedsvc "github.com/sellgrid/sellermock/internal/feeds"
	feesvc "github.com/sellgrid/sellermock/internal/fees"
	invsvc "github.com/sellgrid/sellermock/internal/inventory"
	invoicesvc "github.com/sellgrid/sellermock/internal/invoices"
	listsvc "github.com/sellgrid/sellermock/internal/listings"
	msgsvc "github.com/sellgrid/sellermock/internal/messaging"
	ordersvc "github.com/sellgrid/sellermock/internal/orders"
	salessvc "github.com/sellgrid/sellermock/internal/sales"
	"github.com/sellgrid/sellermock/pkg/config"
	"github.com/sellgrid/sellermock/pkg/logger"
	"github.com/sellgrid/sellermock/pkg/metrics"
	"github.com/sellgrid/sellermock/pkg/redis"
)

// NewRouter assembles the full HTTP surface: one sub-router per upstream API
// version, plus the operational endpoints.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	httpMetrics *metrics.HTTPMetrics,
	registry *prometheus.Registry,
	dbP healthcontrollers.Pinger,
	redisClient *redis.Client,
	inventoryService invsvc.Service,
	salesService salessvc.Service,
	listingsService listsvc.Service,
	ordersService ordersvc.Service,
	feedsService feedsvc.Service,
	reportsService feedsvc.ReportService,
	invoicesService invoicesvc.Service,
	messagingService msgsvc.Service,
	feesService feesvc.Service,
	catalogService catalogsvc.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)
	if redisClient != nil {
		r.Use(middleware.RateLimit(cfg.RateLimit, redisClient, logg))
	}

	var cache healthcontrollers.Pinger
	if redisClient != nil {
		cache = redisClient
	}
	r.Get("/healthz", healthcontrollers.Healthz(cfg, dbP, cache))
	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/fba/inventory/v1", func(r chi.Router) {
		r.Get("/summaries", inventorycontrollers.GetSummaries(inventoryService, logg))
		r.Get("/items/{sku}", inventorycontrollers.GetItem(inventoryService, logg))
		r.Patch("/items/{sku}", inventorycontrollers.PatchItem(inventoryService, logg))
	})

	r.Route("/sales/v1", func(r chi.Router) {
		r.Get("/orderMetrics", salescontrollers.GetOrderMetrics(salesService, logg))
		r.Get("/orderMetrics/summary", salescontrollers.GetOrderMetricsSummary(salesService, logg))
	})

	r.Route("/feeds/2021-06-30/feeds", func(r chi.Router) {
		r.Post("/", feedcontrollers.CreateFeed(feedsService, logg))
		r.Get("/", feedcontrollers.ListFeeds(feedsService, logg))
		r.Get("/{feedId}", feedcontrollers.GetFeed(feedsService, logg))
		r.Delete("/{feedId}", feedcontrollers.CancelFeed(feedsService, logg))
	})

	r.Route("/reports/2021-06-30/reports", func(r chi.Router) {
		r.Post("/", feedcontrollers.CreateReport(reportsService, logg))
		r.Get("/", feedcontrollers.ListReports(reportsService, logg))
		r.Get("/{reportId}", feedcontrollers.GetReport(reportsService, logg))
		r.Delete("/{reportId}", feedcontrollers.CancelReport(reportsService, logg))
	})

	r.Route("/listings/2021-08-01/items/{sellerId}", func(r chi.Router) {
		r.Get("/", listingcontrollers.ListSellerItems(listingsService, logg))
		r.Put("/{sku}", listingcontrollers.PutItem(listingsService, logg))
		r.Get("/{sku}", listingcontrollers.GetItem(listingsService, logg))
		r.Delete("/{sku}", listingcontrollers.DeleteItem(listingsService, logg))
	})

	r.Route("/orders/v0/orders", func(r chi.Router) {
		r.Get("/", ordercontrollers.ListOrders(ordersService, logg))
		r.Get("/{orderId}", ordercontrollers.GetOrder(ordersService, logg))
		r.Get("/{orderId}/orderItems", ordercontrollers.GetOrderItems(ordersService, logg))
		r.Get("/{orderId}/address", ordercontrollers.GetOrderAddress(ordersService, logg))
		r.Get("/{orderId}/buyerInfo", ordercontrollers.GetOrderBuyerInfo(ordersService, logg))
	})

	r.Route("/tax/invoices/2024-06-19", func(r chi.Router) {
		r.Get("/attributes", invoicecontrollers.GetAttributes(invoicesService, logg))
		r.Get("/invoices", invoicecontrollers.ListInvoices(invoicesService, logg))
		r.Get("/invoices/{invoiceId}", invoicecontrollers.GetInvoice(invoicesService, logg))
		r.Get("/documents/{documentId}", invoicecontrollers.GetDocument(invoicesService, logg))
		r.Post("/exports", invoicecontrollers.CreateExport(invoicesService, logg))
		r.Get("/exports", invoicecontrollers.ListExports(invoicesService, logg))
		r.Get("/exports/{exportId}", invoicecontrollers.GetExport(invoicesService, logg))
	})

	r.Route("/messaging/v1/orders/{orderId}", func(r chi.Router) {
		r.Get("/", messagingcontrollers.GetActions(messagingService, logg))
		r.Get("/attributes", messagingcontrollers.GetAttributes(messagingService, logg))
		r.Post("/messages/{messageType}", messagingcontrollers.SendMessage(messagingService, logg))
	})

	r.Route("/catalog", func(r chi.Router) {
		r.Get("/v0/categories", catalogcontrollers.ListCategories(catalogService, logg))
		r.Get("/2022-04-01/items", catalogcontrollers.SearchItems(catalogService, logg))
		r.Get("/2022-04-01/items/{asin}", catalogcontrollers.GetItem(catalogService, logg))
	})

	r.Post("/products/fees/v0/listings/{sellerSku}/feesEstimate", feescontrollers.EstimateForSKU(feesService, logg))

	return r
}
