package activityform

import "itinerary-planner/internal/dom"

// MirrorAddress copies the picked place's formatted address into input. A
// missing place or address clears the field.
func MirrorAddress(place *dom.Place, input dom.Element) {
	address := ""
	if place != nil {
		address = place.FormattedAddress
	}
	input.SetValue(address)
}
