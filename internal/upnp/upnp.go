package upnp

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/pkg/errors"
	l "github.com/sirupsen/logrus"
	"gitlab.com/mipimipi/go-utils"
	"gitlab.com/mipimipi/ohplaylistd/internal/catalog"
	"gitlab.com/mipimipi/ohplaylistd/internal/config"
	"gitlab.com/mipimipi/yuppie"
	"gitlab.com/mipimipi/yuppie/desc"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// svcIDPlaylist is the UPnP service id the OpenHome Playlist service is
// registered under (spec.md §1).
const svcIDPlaylist = "Playlist"

// names of the service's evented state variables (spec.md §1: "evented
// state variables (Metadata, IdArray, TokenArray)").
const (
	svMetadata        = "Metadata"
	svIdArray         = "IdArray"
	svTokenArray      = "TokenArray"
	svTokenArrayToken = "Token"
	svServiceResetTok = "ServiceResetToken"
	svPlaylistsMax    = "PlaylistsMax"
	svTracksMax       = "TracksMax"
)

var log *l.Entry = l.WithFields(l.Fields{"srv": "upnp"})

// Server is the UPnP/SOAP surface of the OpenHome Playlist service. It
// holds no playlist state of its own: every action handler delegates to
// a *catalog.Catalog and every evented property mirrors that Catalog's
// current token/metadata (spec.md §1's "the core exposes a
// change-notification sink that the dispatcher implements").
type Server struct {
	*yuppie.Server
	cfg config.Cfg
	cat *catalog.Catalog
}

// New creates a Server around cat, wiring cat's change-notification
// sink to this server's evented state variables (spec.md §4.8).
func New(ctx context.Context, cat *catalog.Catalog) (srv *Server, err error) {
	log.Trace("creating server ...")

	var yp *yuppie.Server
	if yp, err = createUPnPServer(ctx); err != nil {
		return nil, errors.Wrap(err, "cannot create yuppie UPnP server")
	}

	srv = &Server{
		Server: yp,
		cfg:    ctx.Value(config.KeyCfg).(config.Cfg),
		cat:    cat,
	}

	srv.initStateVariables()
	srv.setHTTPHandler()
	srv.setSOAPHandler()
	cat.SetSink(playlistSink{srv})

	log.Trace("server created")
	return srv, nil
}

// createUPnPServer creates a new instance of the yuppie UPnP server,
// describing a single-service OpenHome Playlist device, the way
// createUPnPServer in the teacher repo describes its MediaServer
// device.
func createUPnPServer(ctx context.Context) (srv *yuppie.Server, err error) {
	cfg := ctx.Value(config.KeyCfg).(config.Cfg)

	srvCfg := yuppie.Config{
		Interfaces:     cfg.UPnP.Interfaces,
		Port:           cfg.UPnP.Port,
		MaxAge:         cfg.UPnP.MaxAge,
		ProductName:    "ohplaylistd",
		ProductVersion: ctx.Value(config.KeyVersion).(string),
		StatusFile:     cfg.UPnP.StatusFile,
		IconRootDir:    config.IconDir,
	}

	root := desc.RootDevice{
		XMLName: xml.Name{
			Local: "root",
			Space: "urn:schemas-upnp-org:device-1-0",
		},
		SpecVersion: desc.SpecVersion{Major: 2, Minor: 0},
		Device: desc.Device{
			DeviceType:       "urn:av-openhome-org:device:Source:1",
			FriendlyName:     cfg.UPnP.ServerName,
			Manufacturer:     cfg.UPnP.Device.Manufacturer,
			ManufacturerURL:  cfg.UPnP.Device.ManufacturerURL,
			ModelDescription: cfg.UPnP.Device.ModelDescription,
			ModelName:        cfg.UPnP.Device.ModelName,
			ModelNumber:      cfg.UPnP.Device.ModelNumber,
			ModelURL:         cfg.UPnP.Device.ModelURL,
			SerialNumber:     cfg.UPnP.Device.SerialNumber,
			UDN:              "uuid:" + cfg.UPnP.UUID,
			UPC:              cfg.UPnP.Device.UPC,
			Icons: []desc.Icon{
				{Mimetype: "image/png", Width: 300, Height: 300, Depth: 8, URL: "/icon.png"},
			},
			Services: []desc.ServiceReference{
				{
					ServiceType: "urn:av-openhome-org:service:Playlist:1",
					ServiceID:   "urn:av-openhome-org:serviceId:" + svcIDPlaylist,
				},
			},
			PresentationURL: "/",
		},
	}

	svcs := make(desc.ServiceMap)
	svc, err := desc.LoadService(filepath.Join(config.CfgDir, svcIDPlaylist+".xml"))
	if err != nil {
		return nil, errors.Wrap(err, "cannot read description of Playlist service")
	}
	svcs[svcIDPlaylist] = svc

	if srv, err = yuppie.New(srvCfg, &root, svcs); err != nil {
		return nil, errors.Wrap(err, "cannot create yuppie UPnP server")
	}

	return srv, nil
}

// initStateVariables seeds the Playlist service's evented state
// variables from the Catalog's current state.
func (me *Server) initStateVariables() {
	me.setStateVar(svPlaylistsMax, uint32(me.cat.MaxPlaylists()))
	me.setStateVar(svTracksMax, uint32(me.cat.MaxTracks()))
	me.setStateVar(svTokenArrayToken, me.cat.Token())
	me.setStateVar(svIdArray, catalog.EncodeIDArray(me.cat.PlaylistIDArray()))
	me.setStateVar(svTokenArray, catalog.EncodeTokenArray(me.cat.PlaylistTokenArray()))
	me.SetServiceResetToken()
	me.refreshMetadata()
}

// setStateVar sets (or initializes) the named state variable of the
// Playlist service, logging a fatal error through me.Errs on failure -
// the same "state variable not found is a programmer error" contract
// the teacher repo's InitStateVariables establishes.
func (me *Server) setStateVar(name string, value interface{}) {
	sv, exists := me.StateVariable(svcIDPlaylist, name)
	if !exists {
		err := fmt.Errorf("state variable '%s' not found: cannot set", name)
		log.Error(err)
		me.Errs <- err
		return
	}
	sv.Lock()
	if err := sv.Set(value); err != nil {
		err = errors.Wrapf(err, "cannot set state variable '%s'", name)
		log.Error(err)
		me.Errs <- err
	}
	sv.Unlock()
}

// SetServiceResetToken assigns a new random string to state variable
// ServiceResetToken, mirroring the teacher's reset-token handling for
// its ContentDirectory service (SPEC_FULL.md Supplemented Features #5).
func (me *Server) SetServiceResetToken() {
	me.setStateVar(svServiceResetTok, utils.RandomString(32))
}

// refreshMetadata rebuilds the service-level Metadata evented property
// (spec.md §6.2's DIDL-Lite device envelope) from the current
// configuration and resident icon.
func (me *Server) refreshMetadata() {
	me.setStateVar(svMetadata, me.deviceMetadataXML())
}

// setHTTPHandler installs the handler for the presentation page.
func (me *Server) setHTTPHandler() {
	me.PresentationHandleFunc(
		func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, "%s [%s]\n\n", me.cfg.UPnP.ServerName, me.Device.UDN[5:])
			fmt.Fprintf(w, "%s\n\n", me.ServerString())
			fmt.Fprint(w, "Status:\n")
			fmt.Fprintf(w, "    BOOTID.UPNP.ORG: %d\n", me.BootID())
			fmt.Fprintf(w, "    CONFIGID.UPNP.ORG: %d\n", me.ConfigID())
			fmt.Fprintf(w, "    catalog token: %d\n", me.cat.Token())
			message.NewPrinter(language.English).Fprintf(w, "    playlists: %d\n", me.cat.PlaylistCount())
		},
	)
}
