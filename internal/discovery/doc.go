// Package discovery finds Home Assistant instances on the local network.
//
// Home Assistant advertises "_home-assistant._tcp" over mDNS with TXT records
// such as location_name, version, uuid, base_url and internal_url. Scan
// collects those advertisements for a fixed window and returns one Instance
// per installation, which `cardwallet discover` prints as base_url
// candidates.
//
//	instances, err := discovery.NewScanner().Scan(ctx)
//	for _, inst := range instances {
//	    fmt.Println(inst.Name, inst.BaseURL())
//	}
package discovery
