package notify

import "strings"

// Router maps a sprint's program code to a destination channel id using a
// static table. Routing is total: codes without an entry resolve to the
// default channel.
type Router struct {
	routes         map[string]string
	defaultChannel string
}

func NewRouter(routes map[string]string, defaultChannel string) *Router {
	return &Router{
		routes:         routes,
		defaultChannel: defaultChannel,
	}
}

// ChannelFor returns the destination channel for a sprint code. The
// program code is the substring before the first dash.
func (r *Router) ChannelFor(sprintCode string) string {
	program, _, _ := strings.Cut(sprintCode, "-")
	if id, ok := r.routes[program]; ok && id != "" {
		return id
	}

	return r.defaultChannel
}
