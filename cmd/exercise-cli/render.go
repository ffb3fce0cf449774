package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	exerciseclient "github.com/Apurer/purchase-order-exercise/internal/clients/http/exercise"
	catalogmapper "github.com/Apurer/purchase-order-exercise/internal/domains/catalog/adapters/http/mapper"
	exercisehttpmapper "github.com/Apurer/purchase-order-exercise/internal/domains/exercise/adapters/http/mapper"
)

func printOffers(w io.Writer, list *catalogmapper.OfferList) {
	for _, offer := range list.Offers {
		fmt.Fprintf(w, "%s  %s (%s)\n", offer.ID, offer.Supplier.Name, offer.Supplier.Address)
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "  ITEM\tREF\tDESIGNATION\tUNIT PRICE\tRECOMMENDED")
		for _, item := range offer.Items {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s €\t%d\n", item.ID, item.Reference, item.Designation, item.UnitPrice, item.RecommendedQuantity)
		}
		_ = tw.Flush()
		c := offer.Conditions
		fmt.Fprintf(w, "  livraison: %s (%s) | paiement: %s, %s\n", c.DeliveryMode, c.DeliveryDelay, c.PaymentMode, c.PaymentDelay)
		fmt.Fprintf(w, "  total recommandé: %s €\n\n", offer.RecommendedTotal)
	}
	if list.Tip != "" {
		fmt.Fprintln(w, list.Tip)
	}
}

func printOptions(w io.Writer, options *exerciseclient.Options) {
	fmt.Fprintf(w, "buyer: %s, %s\n", options.Buyer.Name, options.Buyer.Address)
	fields := []struct {
		name   string
		values []string
	}{
		{"deliveryDelay", options.Conditions.DeliveryDelays},
		{"deliveryMode", options.Conditions.DeliveryModes},
		{"paymentDelay", options.Conditions.PaymentDelays},
		{"paymentMode", options.Conditions.PaymentModes},
	}
	for _, f := range fields {
		fmt.Fprintf(w, "%s:\n", f.name)
		for _, v := range f.values {
			fmt.Fprintf(w, "  - %s\n", v)
		}
	}
}

func printExercise(w io.Writer, e *exercisehttpmapper.Exercise) {
	fmt.Fprintf(w, "session %s  step %s\n", e.ID, e.Step)
	if e.Offer != nil {
		fmt.Fprintf(w, "offer: %s (%s)\n", e.Offer.ID, e.Offer.Supplier.Name)
	}
	if e.Order != nil && e.Offer != nil {
		printOrder(w, e.Order)
		if e.CanFinish {
			fmt.Fprintln(w, "ready to finish")
		}
	}
	if e.Review != nil {
		printReview(w, e.Review)
	}
}

func printOrder(w io.Writer, o *exercisehttpmapper.Order) {
	fmt.Fprintf(w, "order %s  %s\n", o.Number, o.Date)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, line := range o.Items {
		fmt.Fprintf(tw, "  %s\t%s\t%d\tx %s €\t= %s €\n", line.ItemID, line.Designation, line.Quantity, line.UnitPrice, line.Total)
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "subtotal: %s €\n", o.Subtotal)
	c := o.Conditions
	fmt.Fprintf(w, "conditions: %s | %s | %s | %s\n", orDash(c.DeliveryDelay), orDash(c.DeliveryMode), orDash(c.PaymentDelay), orDash(c.PaymentMode))
	fmt.Fprintf(w, "signature: %s\n", orDash(o.Signature))
	if len(o.Missing) > 0 {
		fmt.Fprintf(w, "missing: %s\n", strings.Join(o.Missing, ", "))
	}
}

func printReview(w io.Writer, r *exercisehttpmapper.Review) {
	verdict := "PASSED"
	if !r.Passed {
		verdict = fmt.Sprintf("%d to fix", r.FailedCount)
	}
	fmt.Fprintf(w, "review of %s: %s\n", r.SupplierName, verdict)
	for _, c := range r.Criteria {
		mark := "ok"
		if !c.Passed {
			mark = "KO"
		}
		fmt.Fprintf(w, "  [%s] %s\n", mark, c.Label)
		if !c.Passed && c.Tip != "" {
			fmt.Fprintf(w, "       %s\n", c.Tip)
		}
	}
}

func printAPIError(w io.Writer, err error) {
	var apiErr *exerciseclient.APIError
	if !errors.As(err, &apiErr) {
		fmt.Fprintln(w, err)
		return
	}
	fmt.Fprintln(w, apiErr.Error())
	if missing := apiErr.Missing(); len(missing) > 0 {
		fmt.Fprintf(w, "missing: %s\n", strings.Join(missing, ", "))
	}
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
