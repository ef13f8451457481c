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

package server_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dawstream/dawstream/config"
	"github.com/dawstream/dawstream/packet"
	"github.com/dawstream/dawstream/server"
	"github.com/dawstream/dawstream/streamer"
	"github.com/dawstream/dawstream/test"
	"github.com/dawstream/dawstream/track"
	"github.com/dawstream/dawstream/trackstore"
	"github.com/gorilla/websocket"
)

const singleBeat = `{"tempo": 60, "instruments": [{"name": "sawtooth", "gain": 0, "notes": {"0": ["A4"]}}]}`

func newServer(t *testing.T, modify func(cfg *config.Config)) *httptest.Server {
	t.Helper()

	dir := t.TempDir()
	cfg := config.Config{
		Addr:         "localhost:0",
		Store:        filepath.Join(dir, config.StoreFilename),
		DefaultTempo: track.DefaultTempo,
	}
	if modify != nil {
		modify(&cfg)
	}

	srv := server.NewServer(cfg, trackstore.NewStore(cfg.Store))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return ts
}

func readMessage(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()

	var body struct {
		Message string `json:"message"`
	}
	test.DemandSuccess(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Message
}

func TestRestoreMissing(t *testing.T) {
	ts := newServer(t, nil)

	resp, err := http.Get(ts.URL + "/tracks")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, resp.StatusCode, http.StatusNotFound)
	test.ExpectEquality(t, readMessage(t, resp), "Track not found.")
}

func TestSaveAndRestore(t *testing.T) {
	ts := newServer(t, nil)

	resp, err := http.Post(ts.URL+"/tracks", "application/json", strings.NewReader(singleBeat))
	test.DemandSuccess(t, err)
	resp.Body.Close()
	test.ExpectEquality(t, resp.StatusCode, http.StatusOK)

	// saving again replaces the track
	update := `{"tempo": 90, "instruments": [{"name": "kick", "gain": -3, "notes": {"2": ["C4"]}}]}`
	resp, err = http.Post(ts.URL+"/tracks", "application/json", strings.NewReader(update))
	test.DemandSuccess(t, err)
	resp.Body.Close()
	test.ExpectEquality(t, resp.StatusCode, http.StatusOK)

	resp, err = http.Get(ts.URL + "/tracks")
	test.DemandSuccess(t, err)
	defer resp.Body.Close()
	test.DemandEquality(t, resp.StatusCode, http.StatusOK)

	body, err := io.ReadAll(resp.Body)
	test.DemandSuccess(t, err)

	p, err := track.Decode(body)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.Tempo, 90)
	test.DemandEquality(t, len(p.Instruments), 1)
	test.ExpectEquality(t, p.Instruments[0].Name, "kick")
	test.ExpectEquality(t, p.Instruments[0].Gain, -3.0)
	test.DemandEquality(t, len(p.Instruments[0].Notes[2]), 1)
	test.ExpectEquality(t, p.Instruments[0].Notes[2][0].String(), "C4")
}

func TestSaveMalformed(t *testing.T) {
	ts := newServer(t, nil)

	for _, doc := range []string{
		`{"instruments": [`,
		`{"instruments": [{"name": "banjo", "notes": {}}]}`,
		`{"instruments": [{"name": "sine", "notes": {"0": ["H2"]}}]}`,
	} {
		resp, err := http.Post(ts.URL+"/tracks", "application/json", strings.NewReader(doc))
		test.DemandSuccess(t, err)
		test.ExpectEquality(t, resp.StatusCode, http.StatusBadRequest, doc)
		test.ExpectInequality(t, readMessage(t, resp), "", doc)
	}

	// nothing was saved
	resp, err := http.Get(ts.URL + "/tracks")
	test.DemandSuccess(t, err)
	resp.Body.Close()
	test.ExpectEquality(t, resp.StatusCode, http.StatusNotFound)
}

func TestAssets(t *testing.T) {
	ts := newServer(t, nil)
	resp, err := http.Get(ts.URL + "/index.html")
	test.DemandSuccess(t, err)
	resp.Body.Close()
	test.ExpectEquality(t, resp.StatusCode, http.StatusNotFound)

	dir := t.TempDir()
	test.DemandSuccess(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html></html>"), 0o644))

	ts = newServer(t, func(cfg *config.Config) {
		cfg.Assets = dir
	})
	resp, err = http.Get(ts.URL + "/")
	test.DemandSuccess(t, err)
	defer resp.Body.Close()
	test.ExpectEquality(t, resp.StatusCode, http.StatusOK)

	body, err := io.ReadAll(resp.Body)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(body), "<html></html>")
}

func TestVersion(t *testing.T) {
	ts := newServer(t, nil)

	resp, err := http.Get(ts.URL + "/version")
	test.DemandSuccess(t, err)
	defer resp.Body.Close()
	test.ExpectEquality(t, resp.StatusCode, http.StatusOK)

	var body map[string]string
	test.DemandSuccess(t, json.NewDecoder(resp.Body).Decode(&body))
	test.ExpectEquality(t, body["application"], "Dawstream")
	test.ExpectInequality(t, body["version"], "")
}

func dial(t *testing.T, ts *httptest.Server, header http.Header) (*websocket.Conn, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, header)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err == nil {
		t.Cleanup(func() { conn.Close() })
	}
	return conn, err
}

func readPacket(t *testing.T, conn *websocket.Conn) packet.Packet {
	t.Helper()
	mt, data, err := conn.ReadMessage()
	test.DemandSuccess(t, err)
	test.DemandEquality(t, mt, websocket.BinaryMessage)

	p, err := packet.Decode(data, streamer.ChunkSize)
	test.DemandSuccess(t, err)
	return p
}

func TestStream(t *testing.T) {
	ts := newServer(t, nil)

	conn, err := dial(t, ts, nil)
	test.DemandSuccess(t, err)

	// binary messages from the client are ignored
	test.DemandSuccess(t, conn.WriteMessage(websocket.BinaryMessage, []byte{1, 2, 3}))

	// two tracks on the same connection
	for i := range 2 {
		test.DemandSuccess(t, conn.WriteMessage(websocket.TextMessage, []byte(singleBeat)))

		p := readPacket(t, conn)
		test.ExpectEquality(t, p.Kind, packet.Data, i)
		test.ExpectEquality(t, p.Channels.Stereo, false, i)
		test.ExpectEquality(t, p.Channels.Len(), streamer.ChunkSize, i)

		p = readPacket(t, conn)
		test.ExpectEquality(t, p.Kind, packet.End, i)
		test.ExpectEquality(t, p.Length, 0, i)
		test.ExpectFailure(t, p.HasChannels(), i)
	}

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done")
	test.ExpectSuccess(t, conn.WriteMessage(websocket.CloseMessage, msg))
}

func TestStreamResidual(t *testing.T) {
	ts := newServer(t, nil)

	conn, err := dial(t, ts, nil)
	test.DemandSuccess(t, err)

	// four beats at tempo 240 is exactly one second of audio. a fifth beat
	// leaves a residual of a quarter second
	doc := `{"tempo": 240, "instruments": [{"name": "sawtooth", "notes": {"0": ["A4"], "4": ["A4"]}}]}`
	test.DemandSuccess(t, conn.WriteMessage(websocket.TextMessage, []byte(doc)))

	p := readPacket(t, conn)
	test.ExpectEquality(t, p.Kind, packet.Data)

	p = readPacket(t, conn)
	test.ExpectEquality(t, p.Kind, packet.End)
	test.ExpectEquality(t, int(p.Length), streamer.ChunkSize/4)
	test.ExpectEquality(t, p.Channels.Len(), streamer.ChunkSize/4)
}

func TestStreamMalformed(t *testing.T) {
	ts := newServer(t, nil)

	conn, err := dial(t, ts, nil)
	test.DemandSuccess(t, err)

	test.DemandSuccess(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"instruments": 7}`)))

	_, _, err = conn.ReadMessage()
	test.ExpectSuccess(t, websocket.IsCloseError(err, websocket.CloseInvalidFramePayloadData))
}

func TestStreamOversized(t *testing.T) {
	ts := newServer(t, nil)

	conn, err := dial(t, ts, nil)
	test.DemandSuccess(t, err)

	doc := `{"tempo": 60, "instruments": [], "padding": "` + strings.Repeat("x", server.MaxPayloadSize) + `"}`

	// the server may close the connection before the write completes
	_ = conn.WriteMessage(websocket.TextMessage, []byte(doc))

	_, _, err = conn.ReadMessage()
	test.ExpectFailure(t, err)
	test.ExpectFailure(t, websocket.IsCloseError(err, websocket.CloseNormalClosure))
}

func TestOrigins(t *testing.T) {
	ts := newServer(t, func(cfg *config.Config) {
		cfg.Origins = []string{"http://allowed.example"}
	})

	h := http.Header{}
	h.Set("Origin", "http://other.example")
	_, err := dial(t, ts, h)
	test.ExpectFailure(t, err)

	h.Set("Origin", "http://allowed.example")
	_, err = dial(t, ts, h)
	test.ExpectSuccess(t, err)

	// without a list of origins only same-origin requests are allowed
	ts = newServer(t, nil)
	h.Set("Origin", "http://allowed.example")
	_, err = dial(t, ts, h)
	test.ExpectFailure(t, err)
}
