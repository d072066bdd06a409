package rdx

import "strconv"

const orderStatusHash = "orderstatus"

// CacheOrderStatus records the last status confirmed by the backend for an
// order. The cache is advisory; the backend remains authoritative.
func CacheOrderStatus(orderID int, status string) error {
	return RdxHset(orderStatusHash, strconv.Itoa(orderID), status)
}

// CachedOrderStatus returns the last known status for an order, or "" when
// none has been cached.
func CachedOrderStatus(orderID int) string {
	status, err := RdxHget(orderStatusHash, strconv.Itoa(orderID))
	if err != nil {
		return ""
	}
	return status
}
