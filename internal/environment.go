package internal

type Environment int

const (
	Test Environment = iota
	Live
)

// Endpoint is a logical gateway service; each environment maps it to a fixed URL.
type Endpoint string

const (
	CustomerArea     Endpoint = "customer_area"
	HPPDetails       Endpoint = "hpp_details"
	HPPMulti         Endpoint = "hpp_multi"
	HPPSingle        Endpoint = "hpp_single"
	Directory        Endpoint = "directory"
	ModificationRest Endpoint = "modification_rest"
)

var endpoints = map[Environment]map[Endpoint]string{
	Test: {
		CustomerArea:     "https://ca-test.adyen.com/",
		HPPDetails:       "https://test.adyen.com/hpp/skipDetails.shtml",
		HPPMulti:         "https://test.adyen.com/hpp/select.shtml",
		HPPSingle:        "https://test.adyen.com/hpp/pay.shtml",
		Directory:        "https://test.adyen.com/hpp/directory.shtml",
		ModificationRest: "https://pal-test.adyen.com/pal/adapter/httppost",
	},
	Live: {
		CustomerArea:     "https://ca-live.adyen.com/",
		HPPDetails:       "https://live.adyen.com/hpp/skipDetails.shtml",
		HPPMulti:         "https://live.adyen.com/hpp/select.shtml",
		HPPSingle:        "https://live.adyen.com/hpp/pay.shtml",
		Directory:        "https://live.adyen.com/hpp/directory.shtml",
		ModificationRest: "https://pal-live.adyen.com/pal/adapter/httppost",
	},
}

// ParseEnvironment returns Live only for "live"; anything else selects Test.
func ParseEnvironment(name string) Environment {
	if name == "live" {
		return Live
	}
	return Test
}

func (e Environment) String() string {
	if e == Live {
		return "live"
	}
	return "test"
}

func (e Environment) URL(endpoint Endpoint) string {
	return endpoints[e][endpoint]
}
