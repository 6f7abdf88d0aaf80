// internal/adapters/input/nmap.go
package input

import (
	"encoding/xml"
	"fmt"
	"os"
)

// Port routing for nmap-discovered services: 3389 becomes an RDP target,
// the usual HTTP(S) ports become web targets with the scheme implied by
// the port.
var webPortSchemes = map[int]string{
	80:   "http",
	443:  "https",
	8080: "http",
	8443: "https",
}

// Minimal projection of nmap's -oX document. Only hosts, addresses and open
// TCP ports matter here.
type nmapRun struct {
	Hosts []nmapHost `xml:"host"`
}

type nmapHost struct {
	Status    nmapStatus     `xml:"status"`
	Addresses []nmapAddress  `xml:"address"`
	Hostnames []nmapHostname `xml:"hostnames>hostname"`
	Ports     []nmapPort     `xml:"ports>port"`
}

type nmapStatus struct {
	State string `xml:"state,attr"`
}

type nmapAddress struct {
	Addr     string `xml:"addr,attr"`
	AddrType string `xml:"addrtype,attr"`
}

type nmapHostname struct {
	Name string `xml:"name,attr"`
}

type nmapPort struct {
	Protocol string    `xml:"protocol,attr"`
	PortID   int       `xml:"portid,attr"`
	State    nmapState `xml:"state"`
}

type nmapState struct {
	State string `xml:"state,attr"`
}

// resolveNmap extracts targets from an nmap XML report: every up host
// contributes an RDP target per open 3389 and a web target per open
// HTTP(S) port.
func (r *Resolver) resolveNmap(path string, addRDP, addWeb func(raw, origin string)) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var run nmapRun
	if err := xml.Unmarshal(data, &run); err != nil {
		return fmt.Errorf("parsing nmap xml: %w", err)
	}

	for _, host := range run.Hosts {
		if host.Status.State != "up" {
			continue
		}

		addr := hostAddress(host)
		if addr == "" {
			continue
		}

		for _, port := range host.Ports {
			if port.Protocol != "tcp" || port.State.State != "open" {
				continue
			}

			if port.PortID == 3389 {
				addRDP(fmt.Sprintf("%s:%d", addr, port.PortID), path)
				continue
			}
			if scheme, ok := webPortSchemes[port.PortID]; ok {
				addWeb(fmt.Sprintf("%s://%s:%d", scheme, addr, port.PortID), path)
			}
		}
	}
	return nil
}

// hostAddress prefers the first hostname, falling back to the IPv4/IPv6
// address nmap recorded.
func hostAddress(host nmapHost) string {
	for _, hn := range host.Hostnames {
		if hn.Name != "" {
			return hn.Name
		}
	}
	for _, a := range host.Addresses {
		if a.AddrType == "ipv4" || a.AddrType == "ipv6" {
			return a.Addr
		}
	}
	if len(host.Addresses) > 0 {
		return host.Addresses[0].Addr
	}
	return ""
}
