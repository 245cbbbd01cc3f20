package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strings"
)

// TrustedProxies набор сетей, которым разрешено передавать адрес клиента в заголовках
type TrustedProxies struct {
	nets []*net.IPNet
}

// ParseTrustedProxies разбирает список адресов и CIDR ("10.0.0.0/8", "127.0.0.1")
func ParseTrustedProxies(entries []string) (*TrustedProxies, error) {
	tp := &TrustedProxies{nets: make([]*net.IPNet, 0, len(entries))}
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if !strings.Contains(entry, "/") {
			ip := net.ParseIP(entry)
			if ip == nil {
				return nil, fmt.Errorf("invalid trusted proxy %q", entry)
			}
			bits := 8 * net.IPv6len
			if ip.To4() != nil {
				ip = ip.To4()
				bits = 8 * net.IPv4len
			}
			tp.nets = append(tp.nets, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		_, network, err := net.ParseCIDR(entry)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", entry, err)
		}
		tp.nets = append(tp.nets, network)
	}
	return tp, nil
}

// Contains возвращает true, если адрес принадлежит доверенному прокси
func (tp *TrustedProxies) Contains(addr string) bool {
	if tp == nil {
		return false
	}
	ip := net.ParseIP(strings.TrimSpace(addr))
	if ip == nil {
		return false
	}
	for _, n := range tp.nets {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

// ClientIP возвращает IP клиента.
// Заголовки учитываются, только если запрос пришел от доверенного прокси: тогда X-Forwarded-For
// читается справа налево и берется первый адрес, не принадлежащий прокси, иначе X-Real-IP.
func ClientIP(r *http.Request, trusted *TrustedProxies) string {
	remote := remoteHost(r.RemoteAddr)
	if !trusted.Contains(remote) {
		return remote
	}

	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		hops := strings.Split(forwarded, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if hop == "" || net.ParseIP(hop) == nil {
				break
			}
			if !trusted.Contains(hop) {
				return hop
			}
		}
	}
	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); net.ParseIP(realIP) != nil {
		return realIP
	}
	return remote
}

func remoteHost(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}
