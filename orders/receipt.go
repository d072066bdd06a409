package orders

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"moyo/auth"
	"moyo/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

// Receipt renders a PDF receipt for one of the caller's orders, with a QR
// code of the order uid for doorstep verification.
func (h *Handlers) Receipt(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	orderID, err := strconv.Atoi(ps.ByName("orderId"))
	if err != nil {
		http.Error(w, "Invalid order id", http.StatusBadRequest)
		return
	}

	token := auth.UpstreamToken(r, h.API)
	order, err := h.API.FetchOrder(ctx, token, orderID)
	if err != nil {
		log.Println("Receipt fetch error:", err)
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	// Receipts only render for the order's owner.
	if remote := auth.RemoteID(userID); remote == 0 || order.User.ID != remote {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	qrPNG, err := qrcode.Encode(order.OrderUID, qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Moyo Order Receipt")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Order: %s", order.OrderUID))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Transaction: %s", order.TransactionID))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Status: %s", order.Status))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Placed: %s", order.CreatedAt))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(100, 8, "Item")
	pdf.Cell(25, 8, "Qty")
	pdf.Cell(30, 8, "Total")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 12)
	for _, item := range order.Items {
		pdf.Cell(100, 8, item.ProductName)
		pdf.Cell(25, 8, strconv.Itoa(item.Quantity))
		pdf.Cell(30, 8, item.Total)
		pdf.Ln(8)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Subtotal: %s   Tax: %s   Total: %s", order.Subtotal, order.Tax, order.Total))

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 20, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=receipt-"+order.OrderUID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
