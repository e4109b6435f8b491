package shopclient

import "time"

// StoreHours describes the storefront's daily opening window in whole
// hours. Close is exclusive; an Open greater than Close means the
// window wraps past midnight.
type StoreHours struct {
	Open  int
	Close int
}

// DefaultStoreHours is the banner's 09:00–21:00 window.
func DefaultStoreHours() StoreHours {
	return StoreHours{Open: 9, Close: 21}
}

// IsOpenAt reports whether the store is open at the given instant.
// Pure function of its input so the banner can be tested without a
// clock.
func (h StoreHours) IsOpenAt(t time.Time) bool {
	hour := t.Hour()
	if h.Open == h.Close {
		return false
	}
	if h.Open < h.Close {
		return hour >= h.Open && hour < h.Close
	}
	return hour >= h.Open || hour < h.Close
}
