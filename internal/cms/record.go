// Package cms extracts structured data from free-form CMS
// (commissioning/maintenance service) report text.
package cms

// Attribute names used as keys in exported views and field mappings.
const (
	AttrWindFarm          = "wind_farm"
	AttrTurbineNumber     = "turbine_number"
	AttrTurbineType       = "turbine_type"
	AttrLocation          = "location"
	AttrServiceLifeYear   = "service_life_year"
	AttrTechnicians       = "technicians"
	AttrServiceManager    = "service_manager"
	AttrCommissioningDate = "commissioning_date"
	AttrServiceDate       = "service_date"
	AttrDDAUMAC           = "ddaus_mac"
	AttrIPAddress         = "ip_address"
	AttrTurbineIP         = "turbine_ip"
	AttrGateway           = "gateway"
	AttrControllerType    = "controller_type"
	AttrDASServer         = "das_server"
	AttrSerialNumber      = "serial_number"
	AttrFirmwareVersion   = "firmware_version"
)

// attributeNames lists every record attribute in declaration order.
var attributeNames = []string{
	AttrWindFarm,
	AttrTurbineNumber,
	AttrTurbineType,
	AttrLocation,
	AttrServiceLifeYear,
	AttrTechnicians,
	AttrServiceManager,
	AttrCommissioningDate,
	AttrServiceDate,
	AttrDDAUMAC,
	AttrIPAddress,
	AttrTurbineIP,
	AttrGateway,
	AttrControllerType,
	AttrDASServer,
	AttrSerialNumber,
	AttrFirmwareVersion,
}

// Record is the structured data extracted from one CMS report. An empty
// string means the attribute was not found. RawText keeps the full source
// text for diagnostics and is excluded from every exported view.
type Record struct {
	// Basic information
	WindFarm        string
	TurbineNumber   string
	TurbineType     string
	Location        string
	ServiceLifeYear string

	// Personnel
	Technicians    string
	ServiceManager string

	// Dates
	CommissioningDate string
	ServiceDate       string

	// Network / DDAU details
	DDAUMAC        string
	IPAddress      string
	TurbineIP      string
	Gateway        string
	ControllerType string
	DASServer      string

	SerialNumber    string
	FirmwareVersion string

	// RawText is the verbatim source text, for diagnostics only.
	RawText string
}

// AttributeNames returns every record attribute name in declaration order.
func AttributeNames() []string {
	names := make([]string, len(attributeNames))
	copy(names, attributeNames)
	return names
}

// IsAttribute reports whether name refers to a record attribute.
func IsAttribute(name string) bool {
	for _, attr := range attributeNames {
		if attr == name {
			return true
		}
	}
	return false
}

// Get returns the value of the named attribute. RawText is not reachable
// through attribute names.
func (r *Record) Get(name string) string {
	switch name {
	case AttrWindFarm:
		return r.WindFarm
	case AttrTurbineNumber:
		return r.TurbineNumber
	case AttrTurbineType:
		return r.TurbineType
	case AttrLocation:
		return r.Location
	case AttrServiceLifeYear:
		return r.ServiceLifeYear
	case AttrTechnicians:
		return r.Technicians
	case AttrServiceManager:
		return r.ServiceManager
	case AttrCommissioningDate:
		return r.CommissioningDate
	case AttrServiceDate:
		return r.ServiceDate
	case AttrDDAUMAC:
		return r.DDAUMAC
	case AttrIPAddress:
		return r.IPAddress
	case AttrTurbineIP:
		return r.TurbineIP
	case AttrGateway:
		return r.Gateway
	case AttrControllerType:
		return r.ControllerType
	case AttrDASServer:
		return r.DASServer
	case AttrSerialNumber:
		return r.SerialNumber
	case AttrFirmwareVersion:
		return r.FirmwareVersion
	}
	return ""
}

// set assigns the named attribute. Unknown names are ignored.
func (r *Record) set(name, value string) {
	switch name {
	case AttrWindFarm:
		r.WindFarm = value
	case AttrTurbineNumber:
		r.TurbineNumber = value
	case AttrTurbineType:
		r.TurbineType = value
	case AttrLocation:
		r.Location = value
	case AttrServiceLifeYear:
		r.ServiceLifeYear = value
	case AttrTechnicians:
		r.Technicians = value
	case AttrServiceManager:
		r.ServiceManager = value
	case AttrCommissioningDate:
		r.CommissioningDate = value
	case AttrServiceDate:
		r.ServiceDate = value
	case AttrDDAUMAC:
		r.DDAUMAC = value
	case AttrIPAddress:
		r.IPAddress = value
	case AttrTurbineIP:
		r.TurbineIP = value
	case AttrGateway:
		r.Gateway = value
	case AttrControllerType:
		r.ControllerType = value
	case AttrDASServer:
		r.DASServer = value
	case AttrSerialNumber:
		r.SerialNumber = value
	case AttrFirmwareVersion:
		r.FirmwareVersion = value
	}
}

// AsMap returns the record as attribute-name -> value, skipping absent
// attributes. RawText never appears in the map.
func (r *Record) AsMap() map[string]string {
	m := make(map[string]string)
	for _, attr := range attributeNames {
		if v := r.Get(attr); v != "" {
			m[attr] = v
		}
	}
	return m
}
