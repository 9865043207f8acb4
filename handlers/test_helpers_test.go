package handlers

import (
	"net/http"
	"net/http/httptest"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

const testModelsSheet = "MODELLO,ORE INSTALLAZIONE 1PA,ORE INSTALLAZIONE 1PA PF,PESO 1PA (KG)\n" +
	"Solarflex,2,\"0,5\",120\n" +
	"Solarflex Urano Twin,\"2,5\",\"0,5\",250\n"

const testLogisticsSheet = "PROVINCIA;CAMION GRU;BILICO\nVR;480;900\n"
