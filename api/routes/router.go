package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dapursupply/erp-backend/api/controllers"
	"github.com/dapursupply/erp-backend/api/middleware"
	"github.com/dapursupply/erp-backend/internal/bom"
	"github.com/dapursupply/erp-backend/internal/catalog"
	"github.com/dapursupply/erp-backend/internal/dashboard"
	"github.com/dapursupply/erp-backend/internal/invoice"
	"github.com/dapursupply/erp-backend/internal/manufacturing"
	"github.com/dapursupply/erp-backend/internal/partners"
	"github.com/dapursupply/erp-backend/internal/purchase"
	"github.com/dapursupply/erp-backend/internal/rfq"
	"github.com/dapursupply/erp-backend/internal/sales"
	"github.com/dapursupply/erp-backend/pkg/config"
	"github.com/dapursupply/erp-backend/pkg/db"
	"github.com/dapursupply/erp-backend/pkg/logger"
	"github.com/dapursupply/erp-backend/pkg/metrics"
	"github.com/dapursupply/erp-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	registry *prometheus.Registry,
	httpMetrics *metrics.HTTPMetrics,
	catalogService catalog.Service,
	partnersService partners.Service,
	bomService bom.Service,
	rfqService rfq.Service,
	purchaseService purchase.Service,
	salesService sales.Service,
	deliveryService sales.DeliveryService,
	manufacturingService manufacturing.Service,
	invoiceService invoice.Service,
	dashboardService dashboard.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Metrics(httpMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(catalogService, logg))
			r.Post("/", controllers.CreateProduct(catalogService, logg))
			r.Get("/low-stock", controllers.LowStockProducts(catalogService, logg))
			r.Get("/{id}", controllers.GetProduct(catalogService, logg))
			r.Put("/{id}", controllers.UpdateProduct(catalogService, logg))
			r.Delete("/{id}", controllers.DeleteProduct(catalogService, logg))
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", controllers.ListCustomers(partnersService, logg))
			r.Post("/", controllers.CreateCustomer(partnersService, logg))
			r.Get("/{id}", controllers.GetCustomer(partnersService, logg))
			r.Put("/{id}", controllers.UpdateCustomer(partnersService, logg))
			r.Delete("/{id}", controllers.DeleteCustomer(partnersService, logg))
		})

		r.Route("/vendors", func(r chi.Router) {
			r.Get("/", controllers.ListVendors(partnersService, logg))
			r.Post("/", controllers.CreateVendor(partnersService, logg))
			r.Get("/{id}", controllers.GetVendor(partnersService, logg))
			r.Put("/{id}", controllers.UpdateVendor(partnersService, logg))
			r.Delete("/{id}", controllers.DeleteVendor(partnersService, logg))
		})

		r.Route("/boms", func(r chi.Router) {
			r.Get("/", controllers.ListBOMs(bomService, logg))
			r.Post("/", controllers.CreateBOM(bomService, logg))
			r.Get("/{id}", controllers.GetBOM(bomService, logg))
		})

		r.Route("/rfqs", func(r chi.Router) {
			r.Get("/", controllers.ListRFQs(rfqService, logg))
			r.Post("/", controllers.CreateRFQ(rfqService, logg))
			r.Get("/{id}", controllers.GetRFQ(rfqService, logg))
			r.Get("/{id}/items", controllers.ListRFQItems(rfqService, logg))
			r.Patch("/{id}/status", controllers.UpdateRFQStatus(rfqService, logg))
		})

		r.Route("/purchase-orders", func(r chi.Router) {
			r.Get("/", controllers.ListPurchaseOrders(purchaseService, logg))
			r.Post("/", controllers.CreatePurchaseOrder(purchaseService, logg))
			r.Get("/{id}", controllers.GetPurchaseOrder(purchaseService, logg))
			r.Put("/{id}", controllers.UpdatePurchaseOrder(purchaseService, logg))
			r.Get("/{id}/items", controllers.ListPurchaseItems(purchaseService, logg))
		})

		r.Route("/sales-orders", func(r chi.Router) {
			r.Get("/", controllers.ListSalesOrders(salesService, logg))
			r.Post("/", controllers.CreateSalesOrder(salesService, logg))
			r.Get("/{id}", controllers.GetSalesOrder(salesService, logg))
			r.Get("/{id}/items", controllers.ListSalesOrderItems(salesService, logg))
		})

		r.Route("/deliveries", func(r chi.Router) {
			r.Get("/", controllers.ListDeliveries(deliveryService, logg))
			r.Post("/", controllers.CreateDelivery(deliveryService, logg))
			r.Get("/{id}", controllers.GetDelivery(deliveryService, logg))
			r.Patch("/{id}/status", controllers.UpdateDeliveryStatus(deliveryService, logg))
		})

		r.Route("/manufacturing-orders", func(r chi.Router) {
			r.Get("/", controllers.ListManufacturingOrders(manufacturingService, logg))
			r.Post("/", controllers.CreateManufacturingOrder(manufacturingService, logg))
			r.Get("/{id}", controllers.GetManufacturingOrder(manufacturingService, logg))
			r.Patch("/{id}/status", controllers.UpdateManufacturingOrderStatus(manufacturingService, logg))
		})

		r.Route("/invoices", func(r chi.Router) {
			r.Get("/", controllers.ListInvoices(invoiceService, logg))
			r.Post("/", controllers.CreateInvoice(invoiceService, logg))
			r.Get("/{id}", controllers.GetInvoice(invoiceService, logg))
			r.Patch("/{id}/status", controllers.UpdateInvoiceStatus(invoiceService, logg))
		})

		r.Get("/finance/summary", controllers.FinanceSummary(invoiceService, logg))
		r.Get("/dashboard/summary", controllers.DashboardSummary(dashboardService, logg))
	})

	return r
}
