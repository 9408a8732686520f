package upnp

import (
	"fmt"
	"html"

	"gitlab.com/mipimipi/go-utils"
)

// deviceMetadataXML builds the catalog-wide Metadata evented property:
// the DIDL-Lite envelope describing the Playlist service itself (spec.md
// §6.2). The adapter IP used for the cover art URI is resolved here, in
// the UPnP layer, each time the envelope is built, since it is a network
// concern spec.md §1 excludes from the catalog core.
func (me *Server) deviceMetadataXML() string {
	name := html.EscapeString(me.cfg.UPnP.ServerName)
	return fmt.Sprintf(
		`<DIDL-Lite xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:upnp="urn:schemas-upnp-org:metadata-1-0/upnp/" xmlns="urn:schemas-upnp-org:metadata-1-0/DIDL-Lite/">`+
			`<item id="" parentID="" restricted="True">`+
			`<dc:title>%s</dc:title>`+
			`<upnp:albumArtURI>http://%s/images/Icon.png</upnp:albumArtURI>`+
			`<upnp:class>object.container</upnp:class>`+
			`</item></DIDL-Lite>`,
		name, me.adapterAddr(),
	)
}

// adapterAddr returns "ip:port", the preferred local IP address and the
// configured UPnP port the icon URL is built against (spec.md §1's "IP
// adapter selection" external collaborator). If no local IP address can
// be determined, 0.0.0.0 is used.
func (me *Server) adapterAddr() string {
	ip, err := utils.IPaddr()
	if err != nil {
		return fmt.Sprintf("0.0.0.0:%d", me.cfg.UPnP.Port)
	}
	return fmt.Sprintf("%s:%d", ip, me.cfg.UPnP.Port)
}
