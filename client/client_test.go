// This file is part of Dawstream.
//
// Dawstream is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Dawstream is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Dawstream.  If not, see <https://www.gnu.org/licenses/>.

package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/dawstream/dawstream/client"
	"github.com/dawstream/dawstream/config"
	"github.com/dawstream/dawstream/curated"
	"github.com/dawstream/dawstream/server"
	"github.com/dawstream/dawstream/streamer"
	"github.com/dawstream/dawstream/test"
	"github.com/dawstream/dawstream/track"
	"github.com/dawstream/dawstream/trackstore"
)

func newClient(t *testing.T) *client.Client {
	t.Helper()

	cfg := config.Config{
		Store:        filepath.Join(t.TempDir(), config.StoreFilename),
		DefaultTempo: track.DefaultTempo,
	}
	srv := server.NewServer(cfg, trackstore.NewStore(cfg.Store))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	cl, err := client.NewClient(ts.URL)
	test.DemandSuccess(t, err)

	return cl
}

func payload(t *testing.T, doc string) track.Payload {
	t.Helper()
	p, err := track.Decode([]byte(doc))
	test.DemandSuccess(t, err)
	return p
}

func TestStoreAndRestore(t *testing.T) {
	cl := newClient(t)
	ctx := context.Background()

	_, ok, err := cl.Restore(ctx)
	test.ExpectSuccess(t, err)
	test.ExpectFailure(t, ok)

	p := payload(t, `{"tempo": 100, "instruments": [{"name": "sine", "gain": 2, "notes": {"0": ["A4", "E5"], "3": ["C4"]}}]}`)
	test.DemandSuccess(t, cl.Store(ctx, p))

	q, ok, err := cl.Restore(ctx)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, q.Tempo, 100)
	test.DemandEquality(t, len(q.Instruments), 1)
	test.ExpectEquality(t, q.Instruments[0].Name, "sine")
	test.ExpectEquality(t, len(q.Instruments[0].Notes[0]), 2)
	test.ExpectEquality(t, len(q.Instruments[0].Notes[3]), 1)
}

func TestStream(t *testing.T) {
	cl := newClient(t)

	p := payload(t, `{"tempo": 60, "instruments": [{"name": "square", "gain": 0, "notes": {"0": ["A4"]}}]}`)

	c := streamer.NewCollector()
	stats, err := cl.Stream(context.Background(), p, c)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, stats.Complete)
	test.ExpectSuccess(t, c.Ended())
	test.ExpectEquality(t, stats.Samples, p.TotalSamples())
	test.ExpectEquality(t, len(c.Samples()), p.TotalSamples())

	// the remote stream is identical to a local stream
	local := streamer.NewCollector()
	_, err = streamer.Stream(context.Background(), p.MusicBox(), local)
	test.DemandSuccess(t, err)

	remote := c.Packets()
	packets := local.Packets()
	test.DemandEquality(t, len(remote), len(packets))
	for i := range packets {
		test.ExpectSuccess(t, remote[i].Equal(packets[i]), i)
	}
}

func TestStreamCancelled(t *testing.T) {
	cl := newClient(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := payload(t, `{"tempo": 60, "instruments": [{"name": "sine", "notes": {"0": ["A4"]}}]}`)
	_, err := cl.Stream(ctx, p, streamer.NewCollector())
	test.ExpectFailure(t, err)
}

func TestUnexpectedResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "broken", http.StatusInternalServerError)
	}))
	t.Cleanup(ts.Close)

	cl, err := client.NewClient(ts.URL)
	test.DemandSuccess(t, err)

	_, _, err = cl.Restore(context.Background())
	test.ExpectSuccess(t, curated.Is(err, client.UnexpectedResponse))

	err = cl.Store(context.Background(), track.Payload{Tempo: 120})
	test.ExpectSuccess(t, curated.Is(err, client.UnexpectedResponse))
}

func TestBadServer(t *testing.T) {
	_, err := client.NewClient("ftp://localhost")
	test.ExpectFailure(t, err)

	_, err = client.NewClient(client.DefaultServer)
	test.ExpectSuccess(t, err)
}
