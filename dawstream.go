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

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/bradleyjkemp/memviz"
	"github.com/dawstream/dawstream/analysis"
	"github.com/dawstream/dawstream/client"
	"github.com/dawstream/dawstream/config"
	"github.com/dawstream/dawstream/logger"
	"github.com/dawstream/dawstream/modalflag"
	"github.com/dawstream/dawstream/paths"
	"github.com/dawstream/dawstream/performance"
	"github.com/dawstream/dawstream/pitch"
	"github.com/dawstream/dawstream/reference"
	"github.com/dawstream/dawstream/sdlaudio"
	"github.com/dawstream/dawstream/server"
	"github.com/dawstream/dawstream/sound"
	"github.com/dawstream/dawstream/statsview"
	"github.com/dawstream/dawstream/streamer"
	"github.com/dawstream/dawstream/track"
	"github.com/dawstream/dawstream/trackstore"
	"github.com/dawstream/dawstream/version"
	"github.com/dawstream/dawstream/wavwriter"
)

type stateReq = string

const (
	// main thread should end as soon as possible.
	//
	// takes optional int argument, indicating the status code.
	reqQuit stateReq = "QUIT"
)

type stateRequest struct {
	req  stateReq
	args any
}

// communication between the main() function and the launch() function.
type mainSync struct {
	state chan stateRequest
}

// exit codes
const (
	exitArgs = 10
	exitMode = 20
)

func main() {
	sync := &mainSync{
		state: make(chan stateRequest),
	}

	// the value to use with os.Exit(). can be changed with reqQuit
	// stateRequest
	exitVal := 0

	// the first interrupt cancels the context given to launch(). the mode
	// then has the opportunity to end gracefully, for example by closing a
	// partially rendered WAV file. a second interrupt ends the program
	// immediately
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go launch(ctx, sync)

	done := false
	for !done {
		select {
		case <-intChan:
			fmt.Print("\r")
			if ctx.Err() != nil {
				done = true
			}
			cancel()

		case state := <-sync.state:
			switch state.req {
			case reqQuit:
				done = true
				if state.args != nil {
					if v, ok := state.args.(int); ok {
						exitVal = v
					} else {
						panic(fmt.Sprintf("cannot convert %s arguments into int", reqQuit))
					}
				}
			}
		}
	}

	os.Exit(exitVal)
}

// launch is called from main() as a goroutine. uses mainSync instance to
// indicate when to quit.
func launch(ctx context.Context, sync *mainSync) {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RENDER", "PLAY", "COMPARE", "SERVE", "REMOTE", "STORE", "PERFORMANCE", "KEYS", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		sync.state <- stateRequest{req: reqQuit}
		return

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		sync.state <- stateRequest{req: reqQuit, args: exitArgs}
		return
	}

	switch md.Mode() {
	case "RENDER":
		err = render(ctx, md, os.Stdout)

	case "PLAY":
		err = play(ctx, md, os.Stdout)

	case "COMPARE":
		err = compare(md, os.Stdout)

	case "SERVE":
		err = serve(ctx, md, os.Stdout)

	case "REMOTE":
		err = remote(ctx, md, os.Stdout)

	case "STORE":
		err = store(md, os.Stdout)

	case "PERFORMANCE":
		err = perform(md, os.Stdout)

	case "KEYS":
		err = keys(md, os.Stdout)

	case "VERSION":
		err = showVersion(md, os.Stdout)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		sync.state <- stateRequest{req: reqQuit, args: exitMode}
		return
	}

	sync.state <- stateRequest{req: reqQuit}
}

// loads the configuration file from the resource directory. a missing file is
// not an error
func loadConfig() (config.Config, error) {
	pth, err := config.DefaultPath()
	if err != nil {
		return config.Config{}, err
	}
	return config.Load(pth)
}

// set debugging log echo. the config file can turn echoing on but the command
// line flag is the only way of turning it off
func setEcho(flag bool, cfg config.Config) {
	if flag || cfg.LogEcho {
		logger.EchoTo(os.Stderr)
	} else {
		logger.SetEcho(nil, false)
	}
}

func loadTrack(filename string, defaultTempo int) (track.Payload, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return track.Payload{}, err
	}
	return track.DecodeWithTempo(data, defaultTempo)
}

// the track file for modes that require exactly one
func trackArg(md *modalflag.Modes) (string, error) {
	switch len(md.RemainingArgs()) {
	case 0:
		return "", fmt.Errorf("track file required for %s mode", md)
	case 1:
		return md.GetArg(0), nil
	}
	return "", fmt.Errorf("too many arguments for %s mode", md)
}

func render(ctx context.Context, md *modalflag.Modes, output io.Writer) (rerr error) {
	md.NewMode()

	wav := md.AddString("wav", "", "output WAV file (default is a unique name in the current directory)")
	graph := md.AddString("graph", "", "write the node graph of the first beat to file (graphviz format)")
	tempo := md.AddInt("tempo", 0, "tempo for tracks that do not specify one (default from config)")
	log := md.AddBool("log", false, "echo debugging log to stderr")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if *tempo > 0 {
		cfg.DefaultTempo = *tempo
	}
	setEcho(*log, cfg)

	filename, err := trackArg(md)
	if err != nil {
		return err
	}

	payload, err := loadTrack(filename, cfg.DefaultTempo)
	if err != nil {
		return err
	}

	if *graph != "" {
		err = writeGraph(*graph, payload)
		if err != nil {
			return err
		}
	}

	out := *wav
	if out == "" {
		out = paths.UniqueFilename("render", filename) + ".wav"
	}

	aw, err := wavwriter.New(out)
	if err != nil {
		return err
	}
	defer func() {
		err := aw.Close()
		if rerr == nil {
			rerr = err
		}
	}()

	stats, err := streamer.Stream(ctx, payload.MusicBox(), aw)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "%s: %s\n", out, stats)

	return nil
}

// the graph shows the state of the engine after the first sample has been
// generated, at which point the nodes for the first beat are active
func writeGraph(filename string, payload track.Payload) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	mb := payload.MusicBox()
	_, _ = mb.NextSample()
	memviz.Map(f, mb)

	logger.Logf(logger.Allow, "render", "node graph written to %s", filename)

	return nil
}

func play(ctx context.Context, md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	tempo := md.AddInt("tempo", 0, "tempo for tracks that do not specify one (default from config)")
	log := md.AddBool("log", false, "echo debugging log to stderr")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if *tempo > 0 {
		cfg.DefaultTempo = *tempo
	}
	setEcho(*log, cfg)

	filename, err := trackArg(md)
	if err != nil {
		return err
	}

	payload, err := loadTrack(filename, cfg.DefaultTempo)
	if err != nil {
		return err
	}

	aud, err := sdlaudio.NewAudio()
	if err != nil {
		return err
	}
	defer aud.Close()

	stats, err := streamer.Stream(ctx, payload.MusicBox(), aud)
	if err != nil {
		return err
	}

	err = aud.Drain(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "played %s\n", stats)

	return nil
}

func compare(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	tolerance := md.AddFloat64("tolerance", 0.01, "largest acceptable RMS difference")
	log := md.AddBool("log", false, "echo debugging log to stderr")

	md.AdditionalHelp("arguments are a track file followed by a WAV or MP3 reference file")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	setEcho(*log, cfg)

	if len(md.RemainingArgs()) != 2 {
		return fmt.Errorf("track file and reference file required for %s mode", md)
	}

	payload, err := loadTrack(md.GetArg(0), cfg.DefaultTempo)
	if err != nil {
		return err
	}

	rec, err := reference.Load(md.GetArg(1))
	if err != nil {
		return err
	}
	rec = rec.Resample(sound.SampleRate)

	// the comparison is made against the stream as received by a client
	c := streamer.NewCollector()
	_, err = streamer.Stream(context.Background(), payload.MusicBox(), c)
	if err != nil {
		return err
	}

	r, err := analysis.Compare(c.Samples(), rec.Data, sound.SampleRate)
	if err != nil {
		return err
	}

	fmt.Fprintln(output, r)

	if r.RMSDifference > *tolerance {
		return fmt.Errorf("RMS difference of %.4f is greater than %.4f", r.RMSDifference, *tolerance)
	}

	return nil
}

func serve(ctx context.Context, md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	addr := md.AddString("addr", "", "address to listen on (default from config)")
	storePath := md.AddString("store", "", "track database file (default from config)")
	assets := md.AddString("assets", "", "directory of static files (default from config)")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	log := md.AddBool("log", false, "echo debugging log to stderr")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// command line flags override the config file
	md.Visit(func(flag string) {
		switch flag {
		case "addr":
			cfg.Addr = *addr
		case "store":
			cfg.Store = *storePath
		case "assets":
			cfg.Assets = *assets
		}
	})

	err = cfg.Validate()
	if err != nil {
		return err
	}

	setEcho(*log, cfg)

	if *stats {
		if !statsview.Available() {
			return fmt.Errorf("stats server not included in this build")
		}
		statsview.Launch(ctx, output)
	}

	fmt.Fprintf(output, "%s listening on %s\n", version.ApplicationName, cfg.Addr)

	srv := server.NewServer(cfg, trackstore.NewStore(cfg.Store))
	return srv.Run(ctx)
}

func remote(ctx context.Context, md *modalflag.Modes, output io.Writer) (rerr error) {
	md.NewMode()
	md.AddSubModes("RENDER", "STORE", "RESTORE")

	addr := md.AddString("server", client.DefaultServer, "base URL of the server")
	log := md.AddBool("log", false, "echo debugging log to stderr")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	setEcho(*log, cfg)

	cl, err := client.NewClient(*addr)
	if err != nil {
		return err
	}

	switch md.Mode() {
	case "RENDER":
		md.NewMode()
		wav := md.AddString("wav", "", "output WAV file (default is a unique name in the current directory)")
		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		filename, err := trackArg(md)
		if err != nil {
			return err
		}

		payload, err := loadTrack(filename, cfg.DefaultTempo)
		if err != nil {
			return err
		}

		out := *wav
		if out == "" {
			out = paths.UniqueFilename("remote", filename) + ".wav"
		}

		aw, err := wavwriter.New(out)
		if err != nil {
			return err
		}
		defer func() {
			err := aw.Close()
			if rerr == nil {
				rerr = err
			}
		}()

		stats, err := cl.Stream(ctx, payload, aw)
		if err != nil {
			return err
		}

		fmt.Fprintf(output, "%s: %s\n", out, stats)

	case "STORE":
		md.NewMode()
		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		filename, err := trackArg(md)
		if err != nil {
			return err
		}

		payload, err := loadTrack(filename, cfg.DefaultTempo)
		if err != nil {
			return err
		}

		return cl.Store(ctx, payload)

	case "RESTORE":
		md.NewMode()
		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		payload, ok, err := cl.Restore(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("server has no saved track")
		}

		data, err := payload.Encode()
		if err != nil {
			return err
		}
		fmt.Fprintln(output, string(data))
	}

	return nil
}

func store(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()
	md.AddSubModes("LIST", "SAVE", "GET", "DELETE")

	storePath := md.AddString("store", "", "track database file (default from config)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if *storePath != "" {
		cfg.Store = *storePath
	}

	st := trackstore.NewStore(cfg.Store)

	switch md.Mode() {
	case "LIST":
		md.NewMode()
		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}
		return st.List(output)

	case "SAVE":
		md.NewMode()
		md.AdditionalHelp("arguments are the name to save under followed by a track file")
		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}
		if len(md.RemainingArgs()) != 2 {
			return fmt.Errorf("name and track file required for %s mode", md)
		}
		payload, err := loadTrack(md.GetArg(1), cfg.DefaultTempo)
		if err != nil {
			return err
		}
		return st.Save(md.GetArg(0), payload)

	case "GET":
		md.NewMode()
		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}
		name := server.DefaultTrack
		if len(md.RemainingArgs()) > 0 {
			name = md.GetArg(0)
		}
		payload, ok, err := st.Restore(name)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no track named %s", name)
		}
		data, err := payload.Encode()
		if err != nil {
			return err
		}
		fmt.Fprintln(output, string(data))

	case "DELETE":
		md.NewMode()
		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}
		if len(md.RemainingArgs()) != 1 {
			return fmt.Errorf("name required for %s mode", md)
		}
		return st.Delete(md.GetArg(0))
	}

	return nil
}

func perform(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	duration := md.AddString("duration", "5s", "run duration (with an additional 's' or 'm' suffix)")
	profile := md.AddString("profile", "none", "run performance check with profiling: CPU, MEM, TRACE (comma separated)")
	log := md.AddBool("log", false, "echo debugging log to stderr")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	setEcho(*log, cfg)

	prf, err := performance.ParseProfile(*profile)
	if err != nil {
		return err
	}

	filename, err := trackArg(md)
	if err != nil {
		return err
	}

	payload, err := loadTrack(filename, cfg.DefaultTempo)
	if err != nil {
		return err
	}

	return performance.Check(output, prf, payload, *duration)
}

func keys(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	steps := md.AddBool("steps", false, "list step keys only")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	tw := tabwriter.NewWriter(output, 0, 4, 2, ' ', tabwriter.AlignRight)
	for _, k := range pitch.Keys() {
		if *steps && !k.IsStepKey() {
			continue
		}
		kind := ""
		if k.IsStepKey() {
			kind = "step"
		}
		fmt.Fprintf(tw, "%d\t%s\t%.3f\t%s\t\n", k.Index(), k, k.Frequency(), kind)
	}

	return tw.Flush()
}

func showVersion(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	revision := md.AddBool("revision", false, "display revision information from version control")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *revision {
		_, r, _ := version.Version()
		fmt.Fprintln(output, strings.TrimSpace(r))
		return nil
	}

	fmt.Fprintln(output, version.String())

	return nil
}
