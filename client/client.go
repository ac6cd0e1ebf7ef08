package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/DefiantLabs/pnl-export-cli/accounting"
	"github.com/DefiantLabs/pnl-export-cli/accounting/staking"
	"github.com/DefiantLabs/pnl-export-cli/config"
	"github.com/DefiantLabs/pnl-export-cli/csv"
	"github.com/DefiantLabs/pnl-export-cli/decoding/pickle"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes the exporter over HTTP
type Server struct {
	Exporter *csv.Exporter
	// Defaults are the settings used for keys missing from a request
	Defaults accounting.Settings
	// ExportRoot holds every directory an export request may write into
	ExportRoot string

	exports  *prometheus.CounterVec
	registry *prometheus.Registry
}

func NewServer(exporter *csv.Exporter, defaults accounting.Settings) *Server {
	registry := prometheus.NewRegistry()
	exports := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pnl_exports_total",
		Help: "Number of pnl report exports by endpoint and result.",
	}, []string{"endpoint", "result"})
	registry.MustRegister(exports)

	root := exporter.TempRoot
	if root == "" {
		root = os.TempDir()
	}

	return &Server{
		Exporter:   exporter,
		Defaults:   defaults,
		ExportRoot: root,
		exports:    exports,
		registry:   registry,
	}
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(CORSMiddleware())

	r.POST("/pnl/export", s.ExportPnl)
	r.POST("/pnl/download", s.DownloadPnl)
	r.GET("/contracts/pickle/:address", s.PickleContract)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))
	return r
}

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// ExportRequest asks for the report to be written into Directory, relative to the
// server's export root. Report is the same
// JSON the CLI reads from --report.path, Settings overlays the server defaults.
type ExportRequest struct {
	Directory string          `json:"directory"`
	Settings  json.RawMessage `json:"settings"`
	Report    json.RawMessage `json:"report"`
}

type ExportResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (s *Server) settings(raw json.RawMessage) (accounting.Settings, error) {
	settings := s.Defaults
	if settings.TaxfreeAfterPeriod != nil {
		// decoding writes through the pointer, keep the defaults untouched
		period := *settings.TaxfreeAfterPeriod
		settings.TaxfreeAfterPeriod = &period
	}
	if len(raw) == 0 || string(raw) == "null" {
		return settings, nil
	}
	// keys present in the request replace the defaults, the others are kept
	if err := json.Unmarshal(raw, &settings); err != nil {
		return settings, err
	}
	return settings, nil
}

func parseReport(raw json.RawMessage) (*accounting.Report, error) {
	if len(raw) == 0 {
		return nil, errors.New("report is required")
	}
	return staking.ParseReport(raw)
}

func (s *Server) parseRequest(c *gin.Context) (ExportRequest, accounting.Settings, *accounting.Report, bool) {
	var request ExportRequest
	if err := c.BindJSON(&request); err != nil {
		config.Log.Error("Error processing export request body", err)
		return request, accounting.Settings{}, nil, false
	}

	settings, err := s.settings(request.Settings)
	if err != nil {
		c.JSON(http.StatusBadRequest, ExportResponse{Message: "invalid settings: " + err.Error()})
		return request, settings, nil, false
	}

	report, err := parseReport(request.Report)
	if err != nil {
		c.JSON(http.StatusBadRequest, ExportResponse{Message: "invalid report: " + err.Error()})
		return request, settings, nil, false
	}
	return request, settings, report, true
}

func (s *Server) count(endpoint string, success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	s.exports.WithLabelValues(endpoint, result).Inc()
}

func (s *Server) ExportPnl(c *gin.Context) {
	request, settings, report, ok := s.parseRequest(c)
	if !ok {
		s.count("export", false)
		return
	}
	directory, err := resolveExportDirectory(s.ExportRoot, request.Directory)
	if err != nil {
		s.count("export", false)
		c.JSON(http.StatusBadRequest, ExportResponse{Message: err.Error()})
		return
	}

	success, msg := s.Exporter.Export(settings, csv.ProcessedEvents(report.Events), report.Pnls, directory)
	s.count("export", success)

	status := http.StatusOK
	if !success {
		status = http.StatusInternalServerError
	}
	c.JSON(status, ExportResponse{Success: success, Message: msg})
}

// resolveExportDirectory joins a requested directory onto root, refusing anything
// that would land outside of it.
func resolveExportDirectory(root, directory string) (string, error) {
	if directory == "" {
		return "", errors.New("directory is required")
	}
	if filepath.IsAbs(directory) {
		return "", fmt.Errorf("directory %s must be relative to the export root", directory)
	}

	resolved := filepath.Join(root, directory)
	rel, err := filepath.Rel(root, resolved)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("directory %s is outside of the export root", directory)
	}
	return resolved, nil
}

func (s *Server) DownloadPnl(c *gin.Context) {
	_, settings, report, ok := s.parseRequest(c)
	if !ok {
		s.count("download", false)
		return
	}

	success, path := s.Exporter.CreateZip(settings, csv.ProcessedEvents(report.Events), report.Pnls)
	s.count("download", success)
	if !success {
		c.JSON(http.StatusInternalServerError, ExportResponse{Message: "Could not create the pnl report archive: " + path})
		return
	}

	c.FileAttachment(path, filepath.Base(path))
}

func (s *Server) PickleContract(c *gin.Context) {
	address := c.Param("address")
	if !common.IsHexAddress(address) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid address"})
		return
	}
	checksummed := common.HexToAddress(address)
	c.JSON(http.StatusOK, gin.H{"address": checksummed.Hex(), "pickle": pickle.IsPickleContract(checksummed)})
}
