package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"

	"github.com/opd-ai/firefox/pkg/hashbytes"
	"github.com/opd-ai/firefox/pkg/log"
	"github.com/opd-ai/firefox/pkg/rngffi"
	"github.com/opd-ai/firefox/pkg/utf8check"

	"github.com/labstack/echo/v4"
	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:      "serve",
	Usage:     "expose the random and hashing utilities over HTTP",
	UsageText: "mozkit serve [command options]",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "listen",
			Aliases: []string{"l"},
			Usage:   "listen address `ADDR` (overrides config)",
		},
	},
	Action: serveCmd,
}

type serverAPI struct {
	api *echo.Echo
	rng rngffi.Handle
	// The generator is single-threaded; handlers serialize draws here.
	mu sync.Mutex
}

func (s *serverAPI) getU64(c echo.Context) error {
	count := 1
	if q := c.QueryParam("count"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n <= 0 || n > 4096 {
			return c.String(http.StatusBadRequest, "count must be in 1..4096\n")
		}
		count = n
	}
	values := make([]uint64, count)
	s.mu.Lock()
	for i := range values {
		values[i] = rngffi.Next(s.rng)
	}
	s.mu.Unlock()
	return c.JSON(http.StatusOK, map[string]any{"values": values})
}

func (s *serverAPI) getDouble(c echo.Context) error {
	s.mu.Lock()
	v := rngffi.NextDouble(s.rng)
	s.mu.Unlock()
	return c.JSON(http.StatusOK, map[string]any{"value": v})
}

func (s *serverAPI) getState(c echo.Context) error {
	s.mu.Lock()
	state0, state1, ok := rngffi.State(s.rng)
	s.mu.Unlock()
	if !ok {
		return c.String(http.StatusInternalServerError, "random stream unavailable\n")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"state0":           state0,
		"state1":           state1,
		"offset_of_state0": rngffi.OffsetOfState0(),
		"offset_of_state1": rngffi.OffsetOfState1(),
		"size_of_instance": rngffi.SizeOfInstance(),
	})
}

func (s *serverAPI) setState(c echo.Context) error {
	var req struct {
		State0 uint64 `json:"state0"`
		State1 uint64 `json:"state1"`
	}
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, "invalid state payload\n")
	}
	if req.State0 == 0 && req.State1 == 0 {
		return c.String(http.StatusBadRequest, "state words must not both be zero\n")
	}
	s.mu.Lock()
	rngffi.SetState(s.rng, req.State0, req.State1)
	s.mu.Unlock()
	return c.NoContent(http.StatusNoContent)
}

func (s *serverAPI) postHash(c echo.Context) error {
	var seed uint64
	if q := c.QueryParam("seed"); q != "" {
		n, err := strconv.ParseUint(q, 0, 32)
		if err != nil {
			return c.String(http.StatusBadRequest, "seed must be a 32-bit integer\n")
		}
		seed = n
	}
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return err
	}
	h := hashbytes.HashBytes(body, uint32(seed))
	return c.JSON(http.StatusOK, map[string]any{"hash": h})
}

func (s *serverAPI) postUTF8(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"valid": utf8check.Valid(body)})
}

func (s *serverAPI) healthz(c echo.Context) error {
	return c.String(http.StatusOK, "ok\n")
}

func newServerAPI(rng rngffi.Handle) *serverAPI {
	api := echo.New()
	api.HideBanner = true
	s := &serverAPI{api: api, rng: rng}
	api.GET("/rand/u64", s.getU64)
	api.GET("/rand/double", s.getDouble)
	api.GET("/rand/state", s.getState)
	api.POST("/rand/state", s.setState)
	api.POST("/hash", s.postHash)
	api.POST("/utf8", s.postUTF8)
	api.GET("/healthz", s.healthz)
	return s
}

func serveCmd(c *cli.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return cli.Exit(fmt.Sprintf("Failed to load configuration: %v", err), 1)
	}

	log.MustInit("mozkit")
	defer log.Close()

	seed0, seed1 := cfg.Seed0, cfg.Seed1
	if seed0 == 0 && seed1 == 0 {
		seed0, seed1, err = randomSeeds()
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
	}
	rng := rngffi.New(seed0, seed1)
	if rng == rngffi.InvalidHandle {
		return cli.Exit("Failed to create random stream.", 1)
	}
	defer rngffi.Destroy(rng)

	listen := cfg.ListenAddr
	if c.IsSet("listen") {
		listen = c.String("listen")
	}

	s := newServerAPI(rng)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Printf("Received signal %s, shutting down.", sig)
		s.api.Close()
		rngffi.Destroy(rng)
		log.Close()
		os.Exit(0)
	}()

	log.Printf("mozkit API listening on %s", listen)
	if err := s.api.Start(listen); err != nil && err != http.ErrServerClosed {
		return cli.Exit(fmt.Sprintf("Server error: %v", err), 1)
	}
	return nil
}
