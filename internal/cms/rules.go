package cms

import (
	"net"
	"regexp"
)

// matcher is one pattern attempt for an attribute. Each pattern captures
// exactly one group. When all is set, every match is collected and joined
// with ", " instead of taking the first.
type matcher struct {
	re  *regexp.Regexp
	all bool
}

// rule extracts one record attribute. Matchers run in priority order and
// the first non-empty capture wins. A validator can discard a captured
// value whose shape does not fit; the value is never coerced. The fallback
// pattern is a generic line-anchored rule tried only when every dedicated
// matcher fails.
type rule struct {
	attr     string
	matchers []matcher
	validate func(string) bool
	fallback *regexp.Regexp
}

var (
	// Generic label lines used as cross-attribute fallbacks. The chain is
	// asymmetric: a "Name:" line can stand in for the turbine number and a
	// "Number:" line for the wind farm, never the other way around.
	nameLine   = regexp.MustCompile(`(?im)^[ \t]*Name[:\s]+([^\n]+)`)
	numberLine = regexp.MustCompile(`(?im)^[ \t]*Number[:\s]+([^\n]+)`)

	macShape = regexp.MustCompile(`^([0-9A-Fa-f]{2}:){5}[0-9A-Fa-f]{2}$`)
)

// extractionRules is the ordered heuristic table for CMS report text.
// Labels match case-insensitively; captures are trimmed of surrounding
// whitespace by the engine.
var extractionRules = []rule{
	{
		attr: AttrWindFarm,
		matchers: []matcher{
			{re: regexp.MustCompile(`(?i)(?:Wind\s*Farm|WF|Farm\s*Name)[:\s]+([^\n]+)`)},
		},
		fallback: numberLine,
	},
	{
		attr: AttrTurbineNumber,
		matchers: []matcher{
			{re: regexp.MustCompile(`(?i)(?:Turbine\s*Number|WTG|Wind\s*Turbine)[:\s#]*([A-Za-z0-9\-]+)`)},
		},
		fallback: nameLine,
	},
	{
		attr: AttrTurbineType,
		matchers: []matcher{
			{re: regexp.MustCompile(`(?i)(?:Turbine\s*Type|Model|Type)[:\s]+([^\n]+)`)},
		},
	},
	{
		attr: AttrLocation,
		matchers: []matcher{
			{re: regexp.MustCompile(`(?i)(?:Location|Site|Address)[:\s]+([^\n]+)`)},
			{re: regexp.MustCompile(`(?i)(?:Site\s*Address|Address)[:\s]+([^\n]+)`)},
		},
	},
	{
		attr: AttrServiceLifeYear,
		matchers: []matcher{
			{re: regexp.MustCompile(`(?i)(?:Service\s*Life\s*Year|SLY|Year)[:\s]+(\d{4})`)},
		},
	},
	{
		attr: AttrTechnicians,
		matchers: []matcher{
			{re: regexp.MustCompile(`(?i)(?:Technician|Tech)[:\s]*([A-Z][a-z]+\s+[A-Z][a-z]+)`), all: true},
			{re: regexp.MustCompile(`(?i)(?:Technician|Service\s*Tech)[:\s]+([^\n]+)`)},
		},
	},
	{
		attr: AttrServiceManager,
		matchers: []matcher{
			{re: regexp.MustCompile(`(?i)(?:Service\s*Manager|Manager|Supervisor)[:\s]+([^\n]+)`)},
		},
	},
	{
		attr: AttrCommissioningDate,
		matchers: []matcher{
			{re: regexp.MustCompile(`(?i)(?:Commissioning\s*Date|Commission\s*Date)[:\s]+([0-9\/\-\.]+)`)},
		},
	},
	{
		attr: AttrServiceDate,
		matchers: []matcher{
			{re: regexp.MustCompile(`(?i)(?:Service\s*Date|Inspection\s*Date|Date)[:\s]+([0-9\/\-\.]+)`)},
		},
	},
	{
		attr: AttrDDAUMAC,
		matchers: []matcher{
			{re: regexp.MustCompile(`(?i)(?:MAC\s*Address|DDAU\s*MAC|MAC)[:\s]+([A-Fa-f0-9:]+)`)},
		},
		validate: validMAC,
	},
	{
		attr: AttrIPAddress,
		matchers: []matcher{
			{re: regexp.MustCompile(`(?i)(?:IP\s*Address|IP)[:\s]+(\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})`)},
		},
		validate: validIPv4,
	},
	{
		attr: AttrGateway,
		matchers: []matcher{
			{re: regexp.MustCompile(`(?i)(?:Default\s*Gateway|Gateway)[:\s]+(\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})`)},
		},
		validate: validIPv4,
	},
	{
		attr: AttrControllerType,
		matchers: []matcher{
			{re: regexp.MustCompile(`(?i)(?:Controller\s*Type|Controller)[:\s]+([^\n]+)`)},
		},
	},
	{
		attr: AttrDASServer,
		matchers: []matcher{
			{re: regexp.MustCompile(`(?i)(?:DAS\s*Server|Server)[:\s]+([^\n]+)`)},
		},
	},
	{
		attr: AttrSerialNumber,
		matchers: []matcher{
			{re: regexp.MustCompile(`(?i)(?:Serial\s*Number|S/N|Serial)[:\s]+([A-Za-z0-9\-]+)`)},
		},
	},
	{
		attr: AttrFirmwareVersion,
		matchers: []matcher{
			{re: regexp.MustCompile(`(?i)(?:Firmware\s*Version|FW\s*Version|Firmware)[:\s]+([0-9\.]+)`)},
		},
	},
}

// validIPv4 accepts only a literal dotted-quad address.
func validIPv4(s string) bool {
	ip := net.ParseIP(s)
	return ip != nil && ip.To4() != nil
}

// validMAC accepts only a six-octet colon-hex address.
func validMAC(s string) bool {
	return macShape.MatchString(s)
}
