package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/awesomeaudio/internal/config"
	"github.com/llehouerou/awesomeaudio/internal/engine"
	"github.com/llehouerou/awesomeaudio/internal/errmsg"
	"github.com/llehouerou/awesomeaudio/internal/lastfm"
	"github.com/llehouerou/awesomeaudio/internal/notify"
	"github.com/llehouerou/awesomeaudio/internal/nowplaying"
	"github.com/llehouerou/awesomeaudio/internal/player"
	"github.com/llehouerou/awesomeaudio/internal/session"
	"github.com/llehouerou/awesomeaudio/internal/state"
	"github.com/llehouerou/awesomeaudio/internal/stderr"
	"github.com/llehouerou/awesomeaudio/internal/trackinfo"
	"github.com/llehouerou/awesomeaudio/internal/ui"
)

const (
	appName = "awesomeaudio"

	// Last.fm ignores tracks shorter than this.
	minScrobbleDuration = 30 * time.Second
	maxPendingAge       = 14 * 24 * time.Hour
)

func main() {
	configPath := flag.String("config", "", "config file (default: XDG config dir)")
	noResume := flag.Bool("no-resume", false, "start from the beginning")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <file or file:// URI>\n", appName)
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), *configPath, *noResume); err != nil {
		log.Fatal(err)
	}
}

func run(arg, configPath string, noResume bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}

	uri := sourceURI(arg)
	path, err := engine.PathFromURI(uri)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpPlaybackLoad, err))
	}

	stateMgr, err := state.Open()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpStateOpen, err))
	}
	defer stateMgr.Close()

	// Scrobble requests write to the state database; wait for them before
	// it closes.
	var bg sync.WaitGroup
	defer bg.Wait()

	// C audio libraries write to stderr; show their output in the UI instead.
	var lines <-chan string
	if capture, err := stderr.Start(); err == nil {
		defer capture.Stop()
		lines = capture.Lines()
	}

	meta := loadMetadata(cfg, path)

	var scrobbler *lastfm.Client
	var surfaces []nowplaying.Surface
	if cfg.HasDiscordConfig() {
		discord := nowplaying.NewDiscord(cfg.Discord.AppID)
		discord.OnError(logError(errmsg.OpDiscord))
		defer discord.Close()
		surfaces = append(surfaces, discord)
	}
	if cfg.HasLastfmConfig() {
		client := lastfm.New(cfg.Lastfm.APIKey, cfg.Lastfm.APISecret)
		client.SetSessionKey(cfg.Lastfm.SessionKey)
		if cfg.CanScrobble() {
			scrobbler = client
			bg.Go(func() { retryScrobbles(stateMgr, client) })
			nowPlaying := nowplaying.NewLastfm(client)
			nowPlaying.OnError(logError(errmsg.OpLastfmSend))
			defer nowPlaying.Wait()
			surfaces = append(surfaces, nowPlaying)
		}
	}

	if cfg.Notifications {
		icon := cfg.MediaCenter.Artwork
		if icon == "" {
			icon = trackinfo.FindAlbumArt(path)
		}
		notes := nowplaying.NewNotifications(notify.New(appName), icon)
		notes.OnError(logError(errmsg.OpNotify))
		defer notes.Close()
		surfaces = append(surfaces, notes)
	}

	var center nowplaying.Center = nowplaying.Nop{}
	if cfg.MediaCenterEnabled() {
		mpris, err := nowplaying.NewMPRIS(appName)
		if err != nil {
			log.Print(errmsg.Format(errmsg.OpMediaCenter, err))
		} else {
			mpris.OnError(logError(errmsg.OpMediaCenter))
			defer mpris.Close()
			center = mpris
		}
	}
	center = nowplaying.Tee(center, surfaces...)

	vol, err := stateMgr.GetVolume()
	if err != nil {
		log.Print(errmsg.Format(errmsg.OpVolumeLoad, err))
		vol = &state.VolumeState{Volume: 1}
	}
	mixer := &beepMixer{}
	factory := func(uri string) engine.Engine {
		b := engine.NewBeep(uri)
		b.SetVolume(vol.Volume)
		b.SetMuted(vol.Muted)
		mixer.Beep = b
		return b
	}

	var p *tea.Program
	ctrl := player.New(player.NewSource(uri), player.Deps{
		Engine:           factory,
		Session:          newSession(cfg),
		Center:           center,
		Queue:            ui.Queue(func(msg tea.Msg) { p.Send(msg) }),
		ProgressInterval: cfg.ProgressInterval(),
	})
	defer func() {
		if err := ctrl.Close(); err != nil {
			log.Print(errmsg.Format(errmsg.OpPlaybackClose, err))
		}
	}()

	opts := ui.Options{
		Title:  meta.title,
		Artist: meta.artist,
		Mixer:  mixer,
		Lines:  lines,
		SavePosition: func(pos time.Duration) {
			stateMgr.SavePosition(uri, pos)
		},
	}
	if cfg.Resume && !noResume {
		saved, err := stateMgr.GetPosition(uri)
		if err != nil {
			log.Print(errmsg.Format(errmsg.OpPositionLoad, err))
		} else if saved != nil {
			opts.ResumeAt = saved.Offset
			opts.ResumeSavedAt = saved.UpdatedAt
		}
	}

	started := time.Now()
	opts.Finished = func() {
		if err := stateMgr.ClearPosition(uri); err != nil {
			log.Print(errmsg.Format(errmsg.OpPositionClear, err))
		}
		if scrobbler == nil {
			return
		}
		track := lastfm.Track{
			Artist:    meta.artist,
			Title:     meta.title,
			Album:     meta.album,
			Duration:  ctrl.Duration(),
			Timestamp: started,
		}
		bg.Go(func() { scrobble(stateMgr, scrobbler, track) })
		started = time.Now()
	}

	model := ui.New(ctrl, opts)
	p = tea.NewProgram(model)

	if cfg.MediaCenterEnabled() {
		ctrl.EnableCommandMediaCenter(meta.artist, meta.title, meta.artwork)
	}
	if err := ctrl.Setup(); err != nil {
		return errors.New(errmsg.Format(errmsg.OpPlaybackSetup, err))
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}

	if ctrl.Status() == engine.StatusReadyToPlay {
		if pos := ctrl.Position(); pos > 0 && pos < ctrl.Duration() {
			stateMgr.SavePosition(uri, pos)
		}
	}
	if mixer.Beep != nil {
		if err := stateMgr.SaveVolume(mixer.Volume(), mixer.Muted()); err != nil {
			log.Print(errmsg.Format(errmsg.OpVolumeSave, err))
		}
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// sourceURI turns a command-line argument into a file URI.
func sourceURI(arg string) string {
	if strings.Contains(arg, "://") {
		return arg
	}
	if abs, err := filepath.Abs(arg); err == nil {
		arg = abs
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(arg)}
	return u.String()
}

func newSession(cfg *config.Config) session.Session {
	if cfg.Session.Backend == config.SessionNone {
		return session.Nop{}
	}
	if cfg.Session.Server != "" {
		return session.NewPulse(cfg.Session.Server)
	}
	return session.NewPulse()
}

type metadata struct {
	title   string
	artist  string
	album   string
	artwork image.Image
}

// loadMetadata reads tags and cover art, letting configured values win.
func loadMetadata(cfg *config.Config, path string) metadata {
	var meta metadata
	if info, err := trackinfo.Read(path); err == nil {
		meta.title = info.Title
		meta.artist = info.Artist
		meta.album = info.Album
	}
	if cfg.MediaCenter.Title != "" {
		meta.title = cfg.MediaCenter.Title
	}
	if cfg.MediaCenter.Artist != "" {
		meta.artist = cfg.MediaCenter.Artist
	}

	var err error
	if cfg.MediaCenter.Artwork != "" {
		meta.artwork, err = trackinfo.LoadImage(cfg.MediaCenter.Artwork)
	} else {
		meta.artwork, err = trackinfo.Artwork(path)
	}
	if err != nil {
		log.Print(errmsg.Format(errmsg.OpArtworkLoad, err))
	}
	return meta
}

// beepMixer exposes the engine created at setup as a ui.Mixer.
type beepMixer struct {
	*engine.Beep
}

// logError returns a surface error handler that logs through errmsg. Log
// output reaches the status line through the stderr capture.
func logError(op errmsg.Op) func(error) {
	return func(err error) {
		log.Print(errmsg.Format(op, err))
	}
}

func scrobble(stateMgr *state.Manager, client state.Scrobbler, track lastfm.Track) {
	if track.Title == "" || track.Duration < minScrobbleDuration {
		return
	}
	if err := client.Scrobble(track); err != nil {
		log.Print(errmsg.Format(errmsg.OpScrobble, err))
		if err := stateMgr.AddPendingScrobble(state.PendingFromTrack(track)); err != nil {
			log.Print(errmsg.Format(errmsg.OpScrobble, err))
		}
	}
}

func retryScrobbles(stateMgr *state.Manager, client state.Scrobbler) {
	if err := stateMgr.DeleteOldPendingScrobbles(maxPendingAge); err != nil {
		log.Print(errmsg.Format(errmsg.OpScrobble, err))
	}
	if _, err := stateMgr.RetryPendingScrobbles(client); err != nil {
		log.Print(errmsg.Format(errmsg.OpScrobble, err))
	}
}
