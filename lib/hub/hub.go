package hub

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ValentinKolb/dPort/lib/collection"
	"github.com/ValentinKolb/dPort/lib/port"
	"github.com/puzpuzpuz/xsync/v3"
)

// AddressSeparator separates the component from the port name in an address.
const AddressSeparator = "/"

// ErrInvalidAddress is returned for addresses not of the form component/port.
var ErrInvalidAddress = errors.New("invalid port address")

// Hub is a registry of named port collections.
type Hub struct {
	components *xsync.MapOf[string, collection.IPortCollection]
}

// New creates an empty Hub.
func New() *Hub {
	return &Hub{
		components: xsync.NewMapOf[string, collection.IPortCollection](),
	}
}

// --------------------------------------------------------------------------
// Registry
// --------------------------------------------------------------------------

// Register adds a collection under the given component name.
// Fails with port.ErrAlreadyInCollection if the name is taken.
func (h *Hub) Register(name string, c collection.IPortCollection) error {
	if c == nil {
		return port.NewError(port.ErrCNotFound, "cannot register nil collection for "+name)
	}
	if _, loaded := h.components.LoadOrStore(name, c); loaded {
		return port.NameError(port.ErrCAlreadyInCollection, name)
	}
	plog.Debugf("registered component %s with %d ports", name, c.Len())
	return nil
}

// RegisterProvider registers the ports of p under the given component name.
func (h *Hub) RegisterProvider(name string, p collection.IPortProvider) error {
	return h.Register(name, p.Ports())
}

// Unregister removes a component. It reports whether the component was registered.
// Ports already connected keep sharing their storage.
func (h *Hub) Unregister(name string) bool {
	_, ok := h.components.LoadAndDelete(name)
	if ok {
		plog.Debugf("unregistered component %s", name)
	}
	return ok
}

// Lookup returns the collection of a component.
func (h *Hub) Lookup(name string) (collection.IPortCollection, bool) {
	return h.components.Load(name)
}

// Names returns the registered component names in ascending order.
func (h *Hub) Names() []string {
	names := make([]string, 0, h.components.Size())
	h.components.Range(func(name string, _ collection.IPortCollection) bool {
		names = append(names, name)
		return true
	})
	sort.Strings(names)
	return names
}

// Len returns the number of registered components.
func (h *Hub) Len() int {
	return h.components.Size()
}

// --------------------------------------------------------------------------
// Wiring
// --------------------------------------------------------------------------

// Connect binds port dstPort of component dst to the storage of port srcPort of component src.
func (h *Hub) Connect(dst, dstPort, src, srcPort string) error {
	to, ok := h.components.Load(dst)
	if !ok {
		return port.NameError(port.ErrCNotFound, dst)
	}
	from, ok := h.components.Load(src)
	if !ok {
		return port.NameError(port.ErrCOtherNotFound, src)
	}

	if err := collection.ConnectWith(to, dstPort, from, srcPort); err != nil {
		plog.Warningf("failed to connect %s/%s to %s/%s: %v", dst, dstPort, src, srcPort, err)
		return err
	}
	plog.Debugf("connected %s/%s to %s/%s", dst, dstPort, src, srcPort)
	return nil
}

// ConnectPath is Connect with addresses of the form component/port.
func (h *Hub) ConnectPath(dst, src string) error {
	dstComp, dstPort, err := ParseAddress(dst)
	if err != nil {
		return err
	}
	srcComp, srcPort, err := ParseAddress(src)
	if err != nil {
		return err
	}
	return h.Connect(dstComp, dstPort, srcComp, srcPort)
}

// ParseAddress splits an address of the form component/port.
// The component name must not contain the separator, the port name may.
func ParseAddress(addr string) (component, portName string, err error) {
	component, portName, found := strings.Cut(addr, AddressSeparator)
	if !found || component == "" || portName == "" {
		return "", "", fmt.Errorf("%w: %q (expected component%sport)", ErrInvalidAddress, addr, AddressSeparator)
	}
	return component, portName, nil
}
