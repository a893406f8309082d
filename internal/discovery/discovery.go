package discovery

import (
	"context"
	"fmt"
	"net"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/five82/cardwallet/internal/logging"
)

const (
	// ServiceType is the service Home Assistant advertises over mDNS.
	ServiceType = "_home-assistant._tcp"

	// ServiceDomain is the mDNS domain.
	ServiceDomain = "local."

	// DefaultScanTimeout bounds a scan when the caller gives none.
	DefaultScanTimeout = 5 * time.Second

	// DefaultPort is Home Assistant's default HTTP port.
	DefaultPort = 8123
)

// Instance is one Home Assistant installation found on the network.
type Instance struct {
	Name         string
	Hostname     string
	IP           string
	Port         int
	Version      string
	UUID         string
	advertised   string
	DiscoveredAt time.Time
}

// BaseURL returns the address to put in config.toml. The advertised
// internal URL wins over the resolved address.
func (i Instance) BaseURL() string {
	if i.advertised != "" {
		return i.advertised
	}
	return "http://" + net.JoinHostPort(i.IP, strconv.Itoa(i.Port))
}

func (i Instance) String() string {
	name := i.Name
	if name == "" {
		name = i.Hostname
	}
	return fmt.Sprintf("%s at %s", name, i.BaseURL())
}

// Scanner browses the local network for Home Assistant instances.
type Scanner struct {
	Timeout time.Duration
}

// NewScanner returns a Scanner with the default timeout.
func NewScanner() *Scanner {
	return &Scanner{Timeout: DefaultScanTimeout}
}

// Scan browses until the timeout or ctx ends and returns every instance
// seen, deduplicated by UUID (or address when no UUID is advertised).
func (s *Scanner) Scan(ctx context.Context) ([]Instance, error) {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultScanTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry)
	found := make(map[string]Instance)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for entry := range entries {
			inst, ok := parseServiceEntry(entry)
			if !ok {
				continue
			}
			key := inst.UUID
			if key == "" {
				key = inst.BaseURL()
			}
			if _, seen := found[key]; !seen {
				logging.Debug("home assistant instance found",
					zap.String("name", inst.Name),
					zap.String("url", inst.BaseURL()),
				)
			}
			found[key] = inst
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	<-ctx.Done()
	select {
	case <-done:
	case <-time.After(time.Second):
	}

	out := make([]Instance, 0, len(found))
	for _, inst := range found {
		out = append(out, inst)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].BaseURL() < out[b].BaseURL() })
	return out, nil
}

// parseServiceEntry converts a service entry into an Instance. Entries with
// no usable address are skipped.
func parseServiceEntry(entry *zeroconf.ServiceEntry) (Instance, bool) {
	if entry == nil {
		return Instance{}, false
	}
	txt := parseText(entry.Text)

	inst := Instance{
		Name:         txt["location_name"],
		Hostname:     strings.TrimSuffix(entry.HostName, "."),
		Port:         entry.Port,
		Version:      txt["version"],
		UUID:         txt["uuid"],
		DiscoveredAt: time.Now(),
	}
	if inst.Port == 0 {
		inst.Port = DefaultPort
	}
	for _, key := range []string{"internal_url", "base_url"} {
		if v := strings.TrimRight(strings.TrimSpace(txt[key]), "/"); v != "" {
			inst.advertised = v
			break
		}
	}

	if len(entry.AddrIPv4) > 0 {
		inst.IP = entry.AddrIPv4[0].String()
	} else if len(entry.AddrIPv6) > 0 {
		inst.IP = entry.AddrIPv6[0].String()
	}
	if inst.IP == "" && inst.advertised == "" {
		return Instance{}, false
	}
	return inst, true
}

func parseText(records []string) map[string]string {
	out := make(map[string]string, len(records))
	for _, txt := range records {
		key, value, _ := strings.Cut(txt, "=")
		out[key] = value
	}
	return out
}
