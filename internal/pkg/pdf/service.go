// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/shopspring/decimal"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/checkout"
)

// Service handles PDF generation
type Service struct {
	config *config.Config
	now    func() time.Time
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
		now:    time.Now,
	}
}

// ReceiptData represents the data passed to the receipt template
type ReceiptData struct {
	ReceiptDate string
	Username    string
	Address     string
	Lines       []ReceiptLine
	Summary     checkout.Summary
	Balance     decimal.Decimal
	Shop        ShopInfo
}

// ReceiptLine is one printed cart line
type ReceiptLine struct {
	Name     string
	Category string
	Cost     decimal.Decimal
	Qty      int
	Subtotal decimal.Decimal
}

// ShopInfo represents the shop details printed in the header
type ShopInfo struct {
	Name    string
	Address string
	Email   string
}

// NewReceiptData prepares the template data for a placed order
func (s *Service) NewReceiptData(order *checkout.Order, username, address string) ReceiptData {
	lines := make([]ReceiptLine, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, ReceiptLine{
			Name:     item.Name,
			Category: item.Category,
			Cost:     item.Cost,
			Qty:      item.Qty,
			Subtotal: item.Subtotal(),
		})
	}

	return ReceiptData{
		ReceiptDate: s.now().Format("January 2, 2006"),
		Username:    username,
		Address:     address,
		Lines:       lines,
		Summary:     order.Summary,
		Balance:     order.Balance,
		Shop: ShopInfo{
			Name:    s.config.Receipt.ShopName,
			Address: s.config.Receipt.ShopAddress,
			Email:   s.config.Receipt.ShopEmail,
		},
	}
}

// GenerateReceipt renders a PDF receipt for a placed order
func (s *Service) GenerateReceipt(data ReceiptData) (*bytes.Buffer, error) {
	htmlContent, err := s.RenderHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA5)
	pdfg.Grayscale.Set(false)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)

	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// RenderHTML renders the receipt template
func (s *Service) RenderHTML(data ReceiptData) (string, error) {
	var buf bytes.Buffer
	if err := receiptTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

var receiptTemplate = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Shop.Name}} receipt</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 20px; color: #333; }
        .header { border-bottom: 2px solid #00a278; padding-bottom: 10px; margin-bottom: 20px; }
        .shop-name { font-size: 22px; font-weight: bold; color: #00a278; }
        .meta { font-size: 12px; color: #666; }
        table { width: 100%; border-collapse: collapse; margin-top: 10px; }
        th, td { padding: 6px; border-bottom: 1px solid #ddd; text-align: left; font-size: 12px; }
        td.num, th.num { text-align: right; }
        .totals td { border: none; font-weight: bold; }
    </style>
</head>
<body>
    <div class="header">
        <div class="shop-name">{{.Shop.Name}}</div>
        {{if .Shop.Address}}<div class="meta">{{.Shop.Address}}</div>{{end}}
        {{if .Shop.Email}}<div class="meta">{{.Shop.Email}}</div>{{end}}
    </div>

    <div class="meta">Date: {{.ReceiptDate}}</div>
    <div class="meta">Customer: {{.Username}}</div>
    {{if .Address}}<div class="meta">Ship to: {{.Address}}</div>{{end}}

    <table>
        <thead>
            <tr><th>Product</th><th>Category</th><th class="num">Cost</th><th class="num">Qty</th><th class="num">Subtotal</th></tr>
        </thead>
        <tbody>
        {{range .Lines}}
            <tr><td>{{.Name}}</td><td>{{.Category}}</td><td class="num">${{.Cost.StringFixed 2}}</td><td class="num">{{.Qty}}</td><td class="num">${{.Subtotal.StringFixed 2}}</td></tr>
        {{end}}
        </tbody>
    </table>

    <table class="totals">
        <tr><td>Products</td><td class="num">{{.Summary.ProductCount}}</td></tr>
        <tr><td>Subtotal</td><td class="num">${{.Summary.SubTotal.StringFixed 2}}</td></tr>
        <tr><td>Shipping Charges</td><td class="num">${{.Summary.ShippingCost.StringFixed 2}}</td></tr>
        <tr><td>Total</td><td class="num">${{.Summary.Total.StringFixed 2}}</td></tr>
        <tr><td>Wallet balance</td><td class="num">${{.Balance.StringFixed 2}}</td></tr>
    </table>
</body>
</html>
`))
