package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dweymouth/lapwatch/backend/stopwatch"
)

func TestStartServices_HeadlessStartsNothing(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	a := &App{
		Config:   DefaultConfig("v0.1.0"),
		Engine:   stopwatch.NewEngine(nil, nil, stopwatch.Options{}),
		headless: true,
		bgrndCtx: ctx,
		cancel:   cancel,
	}
	a.Config.Application.CheckForUpdates = true
	a.Config.MPRIS.Enabled = true
	a.UpdateChecker = NewUpdateChecker("v0.1.0", srv.URL, &a.Config.Application.LastCheckedVersion)

	a.startServices("Lapwatch")

	if a.ipcServer != nil {
		t.Error("headless app is serving IPC")
	}
	if a.MPRISHandler != nil {
		t.Error("headless app registered an MPRIS handler")
	}
	time.Sleep(100 * time.Millisecond)
	if n := hits.Load(); n != 0 {
		t.Errorf("headless app checked for updates %d times", n)
	}
}
