package models

// City is the closed set of cities a lead can be located in.
type City string

// City values.
const (
	CityChandigarh City = "Chandigarh"
	CityMohali     City = "Mohali"
	CityZirakpur   City = "Zirakpur"
	CityPanchkula  City = "Panchkula"
	CityOther      City = "Other"
)

// Valid reports whether c is a known city.
func (c City) Valid() bool {
	switch c {
	case CityChandigarh, CityMohali, CityZirakpur, CityPanchkula, CityOther:
		return true
	}

	return false
}

// PropertyType is the closed set of property categories.
type PropertyType string

// PropertyType values.
const (
	PropertyApartment PropertyType = "Apartment"
	PropertyVilla     PropertyType = "Villa"
	PropertyPlot      PropertyType = "Plot"
	PropertyOffice    PropertyType = "Office"
	PropertyRetail    PropertyType = "Retail"
)

// Valid reports whether p is a known property type.
func (p PropertyType) Valid() bool {
	switch p {
	case PropertyApartment, PropertyVilla, PropertyPlot, PropertyOffice, PropertyRetail:
		return true
	}

	return false
}

// RequiresBHK reports whether leads for this property type must carry a
// bedroom-count category.
func (p PropertyType) RequiresBHK() bool {
	return p == PropertyApartment || p == PropertyVilla
}

// BHK is the bedroom-count category for residential property types.
type BHK string

// BHK values.
const (
	BHKOne    BHK = "1"
	BHKTwo    BHK = "2"
	BHKThree  BHK = "3"
	BHKFour   BHK = "4"
	BHKStudio BHK = "Studio"
)

// Valid reports whether b is a known BHK category.
func (b BHK) Valid() bool {
	switch b {
	case BHKOne, BHKTwo, BHKThree, BHKFour, BHKStudio:
		return true
	}

	return false
}

// Purpose is the transaction purpose of a lead.
type Purpose string

// Purpose values.
const (
	PurposeBuy  Purpose = "Buy"
	PurposeRent Purpose = "Rent"
)

// Valid reports whether p is a known purpose.
func (p Purpose) Valid() bool {
	return p == PurposeBuy || p == PurposeRent
}

// Timeline is the closed set of purchase-timeline categories.
type Timeline string

// Timeline values.
const (
	TimelineZeroToThree Timeline = "0-3m"
	TimelineThreeToSix  Timeline = "3-6m"
	TimelineMoreThanSix Timeline = ">6m"
	TimelineExploring   Timeline = "Exploring"
)

// Valid reports whether t is a known timeline.
func (t Timeline) Valid() bool {
	switch t {
	case TimelineZeroToThree, TimelineThreeToSix, TimelineMoreThanSix, TimelineExploring:
		return true
	}

	return false
}

// Source is the closed set of lead acquisition channels.
type Source string

// Source values.
const (
	SourceWebsite  Source = "Website"
	SourceReferral Source = "Referral"
	SourceWalkIn   Source = "Walk-in"
	SourceCall     Source = "Call"
	SourceOther    Source = "Other"
)

// Valid reports whether s is a known source.
func (s Source) Valid() bool {
	switch s {
	case SourceWebsite, SourceReferral, SourceWalkIn, SourceCall, SourceOther:
		return true
	}

	return false
}

// Status is the closed set of lead pipeline states. There is no enforced
// transition graph: any status may be set by any authorized update.
type Status string

// Status values.
const (
	StatusNew         Status = "New"
	StatusQualified   Status = "Qualified"
	StatusContacted   Status = "Contacted"
	StatusVisited     Status = "Visited"
	StatusNegotiation Status = "Negotiation"
	StatusConverted   Status = "Converted"
	StatusDropped     Status = "Dropped"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusQualified, StatusContacted, StatusVisited,
		StatusNegotiation, StatusConverted, StatusDropped:
		return true
	}

	return false
}
