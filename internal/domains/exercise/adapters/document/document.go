// Package document renders a purchase order as the printable "Bon de Commande".
package document

import (
	"bytes"
	"embed"
	"errors"
	htmltemplate "html/template"
	"io"
	texttemplate "text/template"

	"github.com/Apurer/purchase-order-exercise/internal/domains/exercise/domain"
)

// Format selects the document rendering.
type Format string

const (
	FormatHTML Format = "html"
	FormatText Format = "text"
)

// ErrUnknownFormat is returned for formats other than html and text.
var ErrUnknownFormat = errors.New("unknown document format")

//go:embed templates/*.tmpl
var templateFS embed.FS

var (
	htmlTemplate = htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/order.html.tmpl"))
	textTemplate = texttemplate.Must(texttemplate.ParseFS(templateFS, "templates/order.txt.tmpl"))
)

// ParseFormat resolves a query value; blank means HTML.
func ParseFormat(raw string) (Format, error) {
	switch Format(raw) {
	case "", FormatHTML:
		return FormatHTML, nil
	case FormatText:
		return FormatText, nil
	}
	return "", ErrUnknownFormat
}

// ContentType returns the media type for the format.
func (f Format) ContentType() string {
	if f == FormatText {
		return "text/plain; charset=utf-8"
	}
	return "text/html; charset=utf-8"
}

type line struct {
	Reference   string
	Designation string
	Quantity    int
	UnitPrice   string
	Total       string
}

type view struct {
	Number        string
	Date          string
	BuyerName     string
	BuyerAddress  string
	BuyerVAT      string
	BuyerIBAN     string
	SupplierName  string
	SupplierAddr  string
	Lines         []line
	Subtotal      string
	DeliveryMode  string
	DeliveryDelay string
	PaymentMode   string
	PaymentDelay  string
	Signature     string
}

func newView(order *domain.PurchaseOrder) view {
	v := view{
		Number:        order.Number,
		Date:          order.Date(),
		BuyerName:     order.Buyer.Name,
		BuyerAddress:  order.Buyer.Address,
		BuyerVAT:      order.Buyer.VATNumber,
		BuyerIBAN:     order.Buyer.IBAN,
		SupplierName:  order.Supplier.Name,
		SupplierAddr:  order.Supplier.Address,
		Subtotal:      order.Subtotal().StringFixed(2),
		DeliveryMode:  order.Conditions.DeliveryMode,
		DeliveryDelay: order.Conditions.DeliveryDelay,
		PaymentMode:   order.Conditions.PaymentMode,
		PaymentDelay:  order.Conditions.PaymentDelay,
		Signature:     order.Signature,
	}
	for _, item := range order.Items {
		v.Lines = append(v.Lines, line{
			Reference:   item.Item.Reference,
			Designation: item.Item.Designation,
			Quantity:    item.Quantity,
			UnitPrice:   item.Item.UnitPrice.StringFixed(2),
			Total:       item.Total.StringFixed(2),
		})
	}
	return v
}

// Render writes the order document in the requested format.
func Render(w io.Writer, order *domain.PurchaseOrder, format Format) error {
	if order == nil {
		return errors.New("purchase order is required")
	}
	v := newView(order)
	switch format {
	case FormatHTML:
		return htmlTemplate.Execute(w, v)
	case FormatText:
		return textTemplate.Execute(w, v)
	}
	return ErrUnknownFormat
}

// RenderBytes renders into memory so callers can set headers before writing.
func RenderBytes(order *domain.PurchaseOrder, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, order, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
