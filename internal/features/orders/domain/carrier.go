package domain

import "strings"

// Carrier is a normalized shipping provider code.
type Carrier string

const (
	CarrierUnknown Carrier = ""
	CarrierFedEx   Carrier = "fedex"
	CarrierUPS     Carrier = "ups"
	CarrierUSPS    Carrier = "usps"
	CarrierDHL     Carrier = "dhl"
	CarrierPickup  Carrier = "pickup"
	CarrierLocal   Carrier = "local"
)

// ParseCarrier maps a free-form provider name onto a Carrier.
func ParseCarrier(raw string) Carrier {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "fedex", "fed-ex", "federal express":
		return CarrierFedEx
	case "ups":
		return CarrierUPS
	case "usps", "us postal service":
		return CarrierUSPS
	case "dhl", "dhl express":
		return CarrierDHL
	case "pickup", "local_pickup":
		return CarrierPickup
	case "local", "local_delivery":
		return CarrierLocal
	}
	return CarrierUnknown
}

// DisplayName returns the human name of a provider, falling back to raw for unknown carriers.
func DisplayName(raw string) string {
	switch ParseCarrier(raw) {
	case CarrierFedEx:
		return "FedEx"
	case CarrierUPS:
		return "UPS"
	case CarrierUSPS:
		return "USPS"
	case CarrierDHL:
		return "DHL Express"
	case CarrierPickup:
		return "Local Pickup"
	case CarrierLocal:
		return "Local Delivery"
	case CarrierUnknown:
		return raw
	}
	return raw
}
