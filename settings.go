package main

import (
	"encoding/json"
	"fmt"

	"github.com/BrugadaSyndrome/bslogger"

	"FractalExplorer/explorer"
	"FractalExplorer/gallery"
	"FractalExplorer/misc"
)

const (
	defaultGalleryPath = "images"
	defaultRpcPort     = "51000"
	defaultWebAddress  = ":8080"
)

type settings struct {
	logger bslogger.Logger

	ExplorerSettings explorer.Settings
	GalleryFormat    string
	GalleryPath      string
	OriginPatterns   []string
	RpcAddress       string
	WebAddress       string
}

// NewSettings loads settingsFile, an empty name means every value takes its default.
func NewSettings(settingsFile string) (settings, error) {
	s := settings{
		logger: bslogger.NewLogger("Settings", bslogger.Normal, nil),
	}
	if settingsFile != "" {
		fileBytes, err := misc.ReadFile(settingsFile)
		if err != nil {
			return s, fmt.Errorf("unable to read settings file %s - %w", settingsFile, err)
		}
		if err := json.Unmarshal(fileBytes, &s); err != nil {
			return s, fmt.Errorf("unable to parse settings file %s - %w", settingsFile, err)
		}
	}
	if err := s.Verify(); err != nil {
		return s, err
	}
	s.logger.Debug(s.String())
	return s, nil
}

func (s *settings) String() string {
	output := "{Settings "
	output += fmt.Sprintf("ExplorerSettings: %s ", s.ExplorerSettings.String())
	output += fmt.Sprintf("GalleryFormat: %s ", s.GalleryFormat)
	output += fmt.Sprintf("GalleryPath: %s ", s.GalleryPath)
	output += fmt.Sprintf("OriginPatterns: %v ", s.OriginPatterns)
	output += fmt.Sprintf("RpcAddress: %s ", s.RpcAddress)
	output += fmt.Sprintf("WebAddress: %s}", s.WebAddress)
	return output
}

func (s *settings) Verify() error {
	if err := s.ExplorerSettings.Verify(); err != nil {
		return err
	}
	if _, err := gallery.ParseFormat(s.GalleryFormat); err != nil {
		s.logger.Infof("%s, using png", err)
		s.GalleryFormat = gallery.PNG.String()
	}
	if s.GalleryFormat == "" {
		s.GalleryFormat = gallery.PNG.String()
	}
	if s.GalleryPath == "" {
		s.GalleryPath = defaultGalleryPath
	}
	// nil OriginPatterns only admits same origin websocket clients
	if s.RpcAddress == "" {
		s.RpcAddress = fmt.Sprintf("%s:%s", misc.GetLocalAddress(), defaultRpcPort)
	}
	if s.WebAddress == "" {
		s.WebAddress = defaultWebAddress
	}
	return nil
}

func (s *settings) Format() gallery.Format {
	format, _ := gallery.ParseFormat(s.GalleryFormat)
	return format
}
