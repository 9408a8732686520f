package upnp

// this file contains the handler functions for the actions of the
// OpenHome Playlist service (spec.md §6.4), each one a thin adapter
// between yuppie's SOAP argument maps and a *catalog.Catalog call.

import (
	"errors"
	"fmt"

	"gitlab.com/mipimipi/ohplaylistd/internal/catalog"
	"gitlab.com/mipimipi/yuppie"
)

// argument names used across more than one action handler.
const (
	argID          = "Id"
	argAfterID     = "AfterId"
	argValue       = "Value"
	argName        = "Name"
	argDescription = "Description"
	argImageID     = "ImageId"
	argNewID       = "NewId"
	argIDList      = "IdList"
	argTrackID     = "TrackId"
	argUdn         = "Udn"
	argMetadata    = "Metadata"
	argToken       = "Token"
)

// setSOAPHandler registers a handler for every action of the Playlist
// service.
func (me *Server) setSOAPHandler() {
	me.SOAPHandleFunc(svcIDPlaylist, "Metadata",
		func(reqArgs map[string]yuppie.StateVar) (yuppie.SOAPRespArgs, yuppie.SOAPError) {
			return me.metadata(reqArgs)
		})
	me.SOAPHandleFunc(svcIDPlaylist, "ImagesXml",
		func(reqArgs map[string]yuppie.StateVar) (yuppie.SOAPRespArgs, yuppie.SOAPError) {
			return me.imagesXML(reqArgs)
		})
	me.SOAPHandleFunc(svcIDPlaylist, "PlaylistReadArray",
		func(reqArgs map[string]yuppie.StateVar) (yuppie.SOAPRespArgs, yuppie.SOAPError) {
			return me.playlistReadArray(reqArgs)
		})
	me.SOAPHandleFunc(svcIDPlaylist, "PlaylistReadList",
		func(reqArgs map[string]yuppie.StateVar) (yuppie.SOAPRespArgs, yuppie.SOAPError) {
			return me.playlistReadList(reqArgs)
		})
	me.SOAPHandleFunc(svcIDPlaylist, "PlaylistRead",
		func(reqArgs map[string]yuppie.StateVar) (yuppie.SOAPRespArgs, yuppie.SOAPError) {
			return me.playlistRead(reqArgs)
		})
	me.SOAPHandleFunc(svcIDPlaylist, "PlaylistSetName",
		func(reqArgs map[string]yuppie.StateVar) (yuppie.SOAPRespArgs, yuppie.SOAPError) {
			return me.playlistSetName(reqArgs)
		})
	me.SOAPHandleFunc(svcIDPlaylist, "PlaylistSetDescription",
		func(reqArgs map[string]yuppie.StateVar) (yuppie.SOAPRespArgs, yuppie.SOAPError) {
			return me.playlistSetDescription(reqArgs)
		})
	me.SOAPHandleFunc(svcIDPlaylist, "PlaylistSetImageId",
		func(reqArgs map[string]yuppie.StateVar) (yuppie.SOAPRespArgs, yuppie.SOAPError) {
			return me.playlistSetImageID(reqArgs)
		})
	me.SOAPHandleFunc(svcIDPlaylist, "PlaylistInsert",
		func(reqArgs map[string]yuppie.StateVar) (yuppie.SOAPRespArgs, yuppie.SOAPError) {
			return me.playlistInsert(reqArgs)
		})
	me.SOAPHandleFunc(svcIDPlaylist, "PlaylistDeleteId",
		func(reqArgs map[string]yuppie.StateVar) (yuppie.SOAPRespArgs, yuppie.SOAPError) {
			return me.playlistDeleteID(reqArgs)
		})
	me.SOAPHandleFunc(svcIDPlaylist, "PlaylistMove",
		func(reqArgs map[string]yuppie.StateVar) (yuppie.SOAPRespArgs, yuppie.SOAPError) {
			return me.playlistMove(reqArgs)
		})
	me.SOAPHandleFunc(svcIDPlaylist, "PlaylistsMax",
		func(reqArgs map[string]yuppie.StateVar) (yuppie.SOAPRespArgs, yuppie.SOAPError) {
			return me.playlistsMax(reqArgs)
		})
	me.SOAPHandleFunc(svcIDPlaylist, "TracksMax",
		func(reqArgs map[string]yuppie.StateVar) (yuppie.SOAPRespArgs, yuppie.SOAPError) {
			return me.tracksMax(reqArgs)
		})
	me.SOAPHandleFunc(svcIDPlaylist, "PlaylistArrays",
		func(reqArgs map[string]yuppie.StateVar) (yuppie.SOAPRespArgs, yuppie.SOAPError) {
			return me.playlistArrays(reqArgs)
		})
	me.SOAPHandleFunc(svcIDPlaylist, "PlaylistArraysChanged",
		func(reqArgs map[string]yuppie.StateVar) (yuppie.SOAPRespArgs, yuppie.SOAPError) {
			return me.playlistArraysChanged(reqArgs)
		})
	me.SOAPHandleFunc(svcIDPlaylist, "Read",
		func(reqArgs map[string]yuppie.StateVar) (yuppie.SOAPRespArgs, yuppie.SOAPError) {
			return me.read(reqArgs)
		})
	me.SOAPHandleFunc(svcIDPlaylist, "ReadList",
		func(reqArgs map[string]yuppie.StateVar) (yuppie.SOAPRespArgs, yuppie.SOAPError) {
			return me.readList(reqArgs)
		})
	me.SOAPHandleFunc(svcIDPlaylist, "Insert",
		func(reqArgs map[string]yuppie.StateVar) (yuppie.SOAPRespArgs, yuppie.SOAPError) {
			return me.insert(reqArgs)
		})
	me.SOAPHandleFunc(svcIDPlaylist, "DeleteId",
		func(reqArgs map[string]yuppie.StateVar) (yuppie.SOAPRespArgs, yuppie.SOAPError) {
			return me.deleteID(reqArgs)
		})
	me.SOAPHandleFunc(svcIDPlaylist, "DeleteAll",
		func(reqArgs map[string]yuppie.StateVar) (yuppie.SOAPRespArgs, yuppie.SOAPError) {
			return me.deleteAll(reqArgs)
		})
}

// catalogError turns a *catalog.CatalogError (recovered via errors.As)
// into a yuppie.SOAPError, preserving the UPnP error code in the
// description text (spec.md §7's NotFound/Full/InvalidRequest/
// Persistence/Parse taxonomy; yuppie's exported error codes only cover
// the generic UPnP cases, so the service-specific code rides in Desc).
func catalogError(err error) yuppie.SOAPError {
	var cerr *catalog.CatalogError
	if !errors.As(err, &cerr) {
		return yuppie.SOAPError{
			Code: yuppie.UPnPErrorActionFailed,
			Desc: err.Error(),
		}
	}

	code := yuppie.UPnPErrorActionFailed
	if cerr.Code == catalog.CodeInvalidRequest {
		code = yuppie.UPnPErrorInvalidArgs
	}
	return yuppie.SOAPError{
		Code: code,
		Desc: fmt.Sprintf("%d: %s", int(cerr.Code), cerr.Msg),
	}
}

func reqString(args map[string]yuppie.StateVar, name string) string {
	v, ok := args[name]
	if !ok {
		return ""
	}
	return v.String()
}

func reqUint32(args map[string]yuppie.StateVar, name string) uint32 {
	v, ok := args[name]
	if !ok {
		return 0
	}
	n, ok := v.Get().(uint32)
	if !ok {
		return 0
	}
	return n
}

func reqBytes(args map[string]yuppie.StateVar, name string) []byte {
	v, ok := args[name]
	if !ok {
		return nil
	}
	b, ok := v.Get().([]byte)
	if !ok {
		return nil
	}
	return b
}

// handler for action Metadata()
func (me *Server) metadata(reqArgs map[string]yuppie.StateVar) (respArgs yuppie.SOAPRespArgs, soapErr yuppie.SOAPError) {
	sv, exists := me.StateVariable(svcIDPlaylist, svMetadata)
	if !exists {
		soapErr = yuppie.SOAPError{Code: yuppie.UPnPErrorActionFailed, Desc: "state variable 'Metadata' not found"}
		return
	}
	respArgs = yuppie.SOAPRespArgs{argValue: sv.String()}
	return
}

// handler for action ImagesXml(): a small descriptor of the service's
// supported cover-image transport. The Playlist service does not store
// image bytes itself (spec.md §1's Non-goals exclude content
// streaming), so this is a static, well-formed, empty list.
func (me *Server) imagesXML(reqArgs map[string]yuppie.StateVar) (respArgs yuppie.SOAPRespArgs, soapErr yuppie.SOAPError) {
	respArgs = yuppie.SOAPRespArgs{argValue: "<ImageList></ImageList>"}
	return
}

// handler for action PlaylistReadArray(Id)
func (me *Server) playlistReadArray(reqArgs map[string]yuppie.StateVar) (respArgs yuppie.SOAPRespArgs, soapErr yuppie.SOAPError) {
	id := catalog.ID(reqUint32(reqArgs, argID))
	ids, err := me.cat.IDArray(id)
	if err != nil {
		soapErr = catalogError(err)
		return
	}
	respArgs = yuppie.SOAPRespArgs{argValue: catalog.EncodeIDArray(ids)}
	return
}

// handler for action PlaylistReadList(IdList)
func (me *Server) playlistReadList(reqArgs map[string]yuppie.StateVar) (respArgs yuppie.SOAPRespArgs, soapErr yuppie.SOAPError) {
	ids, err := catalog.ParseIDList(reqString(reqArgs, argIDList))
	if err != nil {
		soapErr = catalogError(err)
		return
	}
	respArgs = yuppie.SOAPRespArgs{argValue: me.cat.PlaylistReadList(ids)}
	return
}

// handler for action PlaylistRead(Id)
func (me *Server) playlistRead(reqArgs map[string]yuppie.StateVar) (respArgs yuppie.SOAPRespArgs, soapErr yuppie.SOAPError) {
	id := catalog.ID(reqUint32(reqArgs, argID))
	name, description, imageID, err := me.cat.PlaylistRead(id)
	if err != nil {
		soapErr = catalogError(err)
		return
	}
	respArgs = yuppie.SOAPRespArgs{
		argName:        name,
		argDescription: description,
		argImageID:     imageID,
	}
	return
}

// handler for action PlaylistSetName(Id, Value)
func (me *Server) playlistSetName(reqArgs map[string]yuppie.StateVar) (respArgs yuppie.SOAPRespArgs, soapErr yuppie.SOAPError) {
	id := catalog.ID(reqUint32(reqArgs, argID))
	if err := me.cat.PlaylistSetName(id, reqString(reqArgs, argValue)); err != nil {
		soapErr = catalogError(err)
		return
	}
	respArgs = yuppie.SOAPRespArgs{}
	return
}

// handler for action PlaylistSetDescription(Id, Value)
func (me *Server) playlistSetDescription(reqArgs map[string]yuppie.StateVar) (respArgs yuppie.SOAPRespArgs, soapErr yuppie.SOAPError) {
	id := catalog.ID(reqUint32(reqArgs, argID))
	if err := me.cat.PlaylistSetDescription(id, reqString(reqArgs, argValue)); err != nil {
		soapErr = catalogError(err)
		return
	}
	respArgs = yuppie.SOAPRespArgs{}
	return
}

// handler for action PlaylistSetImageId(Id, Value)
func (me *Server) playlistSetImageID(reqArgs map[string]yuppie.StateVar) (respArgs yuppie.SOAPRespArgs, soapErr yuppie.SOAPError) {
	id := catalog.ID(reqUint32(reqArgs, argID))
	if err := me.cat.PlaylistSetImageID(id, reqUint32(reqArgs, argValue)); err != nil {
		soapErr = catalogError(err)
		return
	}
	respArgs = yuppie.SOAPRespArgs{}
	return
}

// handler for action PlaylistInsert(AfterId, Name, Description, ImageId)
func (me *Server) playlistInsert(reqArgs map[string]yuppie.StateVar) (respArgs yuppie.SOAPRespArgs, soapErr yuppie.SOAPError) {
	afterID := catalog.ID(reqUint32(reqArgs, argAfterID))
	newID, err := me.cat.PlaylistInsert(
		afterID,
		reqString(reqArgs, argName),
		reqString(reqArgs, argDescription),
		reqUint32(reqArgs, argImageID),
	)
	if err != nil {
		soapErr = catalogError(err)
		return
	}
	respArgs = yuppie.SOAPRespArgs{argNewID: uint32(newID)}
	return
}

// handler for action PlaylistDeleteId(Id)
func (me *Server) playlistDeleteID(reqArgs map[string]yuppie.StateVar) (respArgs yuppie.SOAPRespArgs, soapErr yuppie.SOAPError) {
	id := catalog.ID(reqUint32(reqArgs, argID))
	if err := me.cat.PlaylistDelete(id); err != nil {
		soapErr = catalogError(err)
		return
	}
	respArgs = yuppie.SOAPRespArgs{}
	return
}

// handler for action PlaylistMove(Id, AfterId)
func (me *Server) playlistMove(reqArgs map[string]yuppie.StateVar) (respArgs yuppie.SOAPRespArgs, soapErr yuppie.SOAPError) {
	id := catalog.ID(reqUint32(reqArgs, argID))
	afterID := catalog.ID(reqUint32(reqArgs, argAfterID))
	if err := me.cat.PlaylistMove(id, afterID); err != nil {
		soapErr = catalogError(err)
		return
	}
	respArgs = yuppie.SOAPRespArgs{}
	return
}

// handler for action PlaylistsMax()
func (me *Server) playlistsMax(reqArgs map[string]yuppie.StateVar) (respArgs yuppie.SOAPRespArgs, soapErr yuppie.SOAPError) {
	respArgs = yuppie.SOAPRespArgs{argValue: uint32(me.cat.MaxPlaylists())}
	return
}

// handler for action TracksMax()
func (me *Server) tracksMax(reqArgs map[string]yuppie.StateVar) (respArgs yuppie.SOAPRespArgs, soapErr yuppie.SOAPError) {
	respArgs = yuppie.SOAPRespArgs{argValue: uint32(me.cat.MaxTracks())}
	return
}

// handler for action PlaylistArrays()
func (me *Server) playlistArrays(reqArgs map[string]yuppie.StateVar) (respArgs yuppie.SOAPRespArgs, soapErr yuppie.SOAPError) {
	respArgs = yuppie.SOAPRespArgs{
		argToken:     me.cat.Token(),
		"IdArray":    catalog.EncodeIDArray(me.cat.PlaylistIDArray()),
		"TokenArray": catalog.EncodeTokenArray(me.cat.PlaylistTokenArray()),
	}
	return
}

// handler for action PlaylistArraysChanged(Token)
func (me *Server) playlistArraysChanged(reqArgs map[string]yuppie.StateVar) (respArgs yuppie.SOAPRespArgs, soapErr yuppie.SOAPError) {
	changed := me.cat.TokenChanged(reqUint32(reqArgs, argToken))
	respArgs = yuppie.SOAPRespArgs{argValue: changed}
	return
}

// handler for action Read(Id, TrackId)
func (me *Server) read(reqArgs map[string]yuppie.StateVar) (respArgs yuppie.SOAPRespArgs, soapErr yuppie.SOAPError) {
	id := catalog.ID(reqUint32(reqArgs, argID))
	trackID := catalog.ID(reqUint32(reqArgs, argTrackID))
	tr, err := me.cat.Read(id, trackID)
	if err != nil {
		soapErr = catalogError(err)
		return
	}
	respArgs = yuppie.SOAPRespArgs{argUdn: tr.Udn(), argMetadata: tr.Metadata()}
	return
}

// handler for action ReadList(Id, TrackIdList)
func (me *Server) readList(reqArgs map[string]yuppie.StateVar) (respArgs yuppie.SOAPRespArgs, soapErr yuppie.SOAPError) {
	id := catalog.ID(reqUint32(reqArgs, argID))
	trackIDs, err := catalog.ParseIDList(reqString(reqArgs, "TrackIdList"))
	if err != nil {
		soapErr = catalogError(err)
		return
	}
	xml, err := me.cat.ReadList(id, trackIDs)
	if err != nil {
		soapErr = catalogError(err)
		return
	}
	respArgs = yuppie.SOAPRespArgs{argValue: xml}
	return
}

// handler for action Insert(Id, AfterTrackId, Udn, Metadata)
func (me *Server) insert(reqArgs map[string]yuppie.StateVar) (respArgs yuppie.SOAPRespArgs, soapErr yuppie.SOAPError) {
	id := catalog.ID(reqUint32(reqArgs, argID))
	afterTrackID := catalog.ID(reqUint32(reqArgs, "AfterTrackId"))
	newTrackID, err := me.cat.Insert(id, afterTrackID, reqString(reqArgs, argUdn), reqString(reqArgs, argMetadata))
	if err != nil {
		soapErr = catalogError(err)
		return
	}
	respArgs = yuppie.SOAPRespArgs{"NewTrackId": uint32(newTrackID)}
	return
}

// handler for action DeleteId(Id, TrackId)
func (me *Server) deleteID(reqArgs map[string]yuppie.StateVar) (respArgs yuppie.SOAPRespArgs, soapErr yuppie.SOAPError) {
	id := catalog.ID(reqUint32(reqArgs, argID))
	trackID := catalog.ID(reqUint32(reqArgs, argTrackID))
	if err := me.cat.Delete(id, trackID); err != nil {
		soapErr = catalogError(err)
		return
	}
	respArgs = yuppie.SOAPRespArgs{}
	return
}

// handler for action DeleteAll(Id)
func (me *Server) deleteAll(reqArgs map[string]yuppie.StateVar) (respArgs yuppie.SOAPRespArgs, soapErr yuppie.SOAPError) {
	id := catalog.ID(reqUint32(reqArgs, argID))
	if err := me.cat.DeleteAll(id); err != nil {
		soapErr = catalogError(err)
		return
	}
	respArgs = yuppie.SOAPRespArgs{}
	return
}

// announcePlaylistsChanged and announcePlaylistChanged refresh the
// evented IdArray/TokenArray state variables. They are called through
// playlistSink, the catalog.ChangeSink installed on the Catalog this
// Server wraps (spec.md §4.8) - never directly by an action handler,
// since every mutating action already goes through a Catalog method
// that notifies the sink itself.
func (me *Server) announcePlaylistsChanged() {
	me.setStateVar(svTokenArrayToken, me.cat.Token())
	me.setStateVar(svIdArray, catalog.EncodeIDArray(me.cat.PlaylistIDArray()))
	me.setStateVar(svTokenArray, catalog.EncodeTokenArray(me.cat.PlaylistTokenArray()))
}

func (me *Server) announcePlaylistChanged() {
	me.setStateVar(svTokenArrayToken, me.cat.Token())
	me.setStateVar(svTokenArray, catalog.EncodeTokenArray(me.cat.PlaylistTokenArray()))
}
