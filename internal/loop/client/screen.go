package client

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tomz197/asteroid-waves/internal/config"
	"github.com/tomz197/asteroid-waves/internal/draw"
	"github.com/tomz197/asteroid-waves/internal/entity"
	"github.com/tomz197/asteroid-waves/internal/event"
	"github.com/tomz197/asteroid-waves/internal/loop"
	"github.com/tomz197/asteroid-waves/internal/physics"
)

var viewCenter = mgl64.Vec2{config.ViewWidth / 2, config.ViewHeight / 2}

// describe formats an outcome for the event log. Outcomes too frequent to be
// worth a line return "".
func describe(e event.Event) string {
	switch e := e.(type) {
	case event.WaveStarted:
		c := e.Composition
		s := fmt.Sprintf("wave %d: %d asteroids", e.Wave, c.Asteroids)
		if n := c.SmallEnemies + c.LargeEnemies; n > 0 {
			s += fmt.Sprintf(", %d ufo", n)
		}
		if c.Boss {
			s += ", boss"
		}
		return s
	case event.PowerUpCollected:
		return fmt.Sprintf("picked up %s", e.PowerUpType)
	case event.PlayerDestroyed:
		return "ship destroyed"
	case event.WeaponUpgraded:
		return fmt.Sprintf("weapon level %d", e.Level)
	case event.ShieldChanged:
		if e.Strength <= 0 {
			return "shield down"
		}
		return fmt.Sprintf("shield %d/%d", e.Strength, e.MaxStrength)
	case event.StateChanged:
		switch e.To {
		case loop.StatePaused.String():
			return "paused"
		case loop.StateDead.String():
			return "game over"
		}
	}
	return ""
}

func explosionRadius(e event.ExplosionRequested) float64 {
	switch e.Category {
	case entity.SizeXL:
		return 50
	case entity.SizeL:
		return 35
	case entity.SizeM:
		return 20
	default:
		return 10
	}
}

// toView maps a world point into view space around the camera, wrapping
// across world edges. ok is false when a circle of radius r there is not visible.
func (c *Client) toView(bounds physics.Bounds, p mgl64.Vec2, r float64) (mgl64.Vec2, bool) {
	v := bounds.Delta(c.state.Camera, p).Add(viewCenter)
	visible := v[0]+r >= 0 && v[0]-r <= config.ViewWidth && v[1]+r >= 0 && v[1]-r <= config.ViewHeight
	return v, visible
}

// text writes an overlay and marks its cells for the canvas to repaint.
func (c *Client) text(col, row int, s string) {
	c.chunkWriter.WriteAt(col, row, s)
	c.canvas.MarkTextDirty(col, row, len([]rune(s)))
}

// centered writes s centred on (centerX, row).
func (c *Client) centered(centerX, row int, s string) {
	c.text(centerX-len([]rune(s))/2, row, s)
}

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	snap := c.server.GetSnapshot()

	// On game state or inactivity transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	if snap.State != c.state.prevGameState || c.state.isInactive != c.state.wasInactive ||
		c.state.shuttingDown != c.state.prevShutdown {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevGameState = snap.State
		c.state.wasInactive = c.state.isInactive
		c.state.prevShutdown = c.state.shuttingDown
	}

	c.canvas.Clear()
	c.drawWorld(snap)
	if err := c.canvas.Render(c.chunkWriter); err != nil {
		return err
	}
	c.drawUI(snap)

	return c.chunkWriter.Flush()
}

// drawWorld draws every visible blip, explosion and indicator onto the canvas.
func (c *Client) drawWorld(snap *loop.Snapshot) {
	var shape [24]mgl64.Vec2

	for i := range snap.Blips {
		b := &snap.Blips[i]
		p, ok := c.toView(snap.Bounds, b.Position, b.Radius)
		if !ok {
			continue
		}
		switch b.Kind {
		case entity.KindAsteroid:
			rot := mgl64.Rotate2D(b.Rotation)
			pts := shape[:0]
			for _, v := range b.Vertices {
				if len(pts) == len(shape) {
					break
				}
				pts = append(pts, p.Add(rot.Mul2x1(v)))
			}
			if len(pts) < 3 {
				c.canvas.DrawCircle(p, b.Radius, 8, false)
				continue
			}
			c.canvas.DrawPolygon(pts, false)
		case entity.KindPlayer:
			h := physics.Heading(b.Rotation)
			side := mgl64.Vec2{-h[1], h[0]}
			nose := p.Add(h.Mul(b.Radius * 1.4))
			back := p.Sub(h.Mul(b.Radius * 0.8))
			c.canvas.DrawPolygon([]mgl64.Vec2{
				nose,
				back.Add(side.Mul(b.Radius)),
				back.Sub(side.Mul(b.Radius)),
			}, true)
		case entity.KindEnemy:
			c.canvas.DrawCircle(p, b.Radius, 8, false)
			c.canvas.DrawLine(p.Sub(mgl64.Vec2{b.Radius * 1.4, 0}), p.Add(mgl64.Vec2{b.Radius * 1.4, 0}))
		case entity.KindShield:
			if snap.ShieldRatio() > 0 {
				c.canvas.DrawCircle(p, b.Radius, 12, false)
			}
		case entity.KindPowerUp:
			r := b.Radius
			c.canvas.DrawPolygon([]mgl64.Vec2{
				p.Add(mgl64.Vec2{0, -r}), p.Add(mgl64.Vec2{r, 0}),
				p.Add(mgl64.Vec2{0, r}), p.Add(mgl64.Vec2{-r, 0}),
			}, true)
		case entity.KindProjectile:
			c.canvas.Set(p)
		}
	}

	for _, ex := range c.state.explosions {
		r := ex.radius * ex.age / config.ExplosionDisplaySeconds
		if p, ok := c.toView(snap.Bounds, ex.origin, r); ok {
			c.canvas.DrawCircle(p, r, 10, false)
		}
	}

	if !snap.PlayerAlive {
		return
	}
	for _, target := range c.state.indicators {
		d := snap.Bounds.Delta(snap.PlayerPosition, target)
		if d.Len() < 1 {
			continue
		}
		d = d.Normalize()
		c.canvas.DrawLine(viewCenter.Add(d.Mul(18)), viewCenter.Add(d.Mul(26)))
	}
}

// drawUI draws the game UI overlay.
func (c *Client) drawUI(snap *loop.Snapshot) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth/2 + c.canvasCol()
	centerY := termHeight/2 + c.canvasRow()

	if c.state.shuttingDown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}
	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	c.drawPlayingHUD(termWidth, termHeight, snap)
	switch snap.State {
	case loop.StatePaused:
		c.centered(centerX, centerY, ">>  PAUSED  -  ESC to resume  <<")
	case loop.StateDead:
		c.drawDeadScreen(centerX, centerY, snap)
	}
}

// canvasCol and canvasRow are the 0-based terminal position of the canvas.
func (c *Client) canvasCol() int {
	col, _ := c.canvas.LogicalToTerminal(mgl64.Vec2{})
	return col - 1
}

func (c *Client) canvasRow() int {
	_, row := c.canvas.LogicalToTerminal(mgl64.Vec2{})
	return row - 1
}

// drawPlayingHUD draws the status line, radar and event log.
func (c *Client) drawPlayingHUD(termWidth, termHeight int, snap *loop.Snapshot) {
	left, top := c.canvasCol()+1, c.canvasRow()+1

	status := fmt.Sprintf(" WAVE %d  SCORE %d  ROCKS %d  UFO %d  WEAPON %d  SHIELD %s ",
		snap.Wave, snap.Score, snap.Asteroids, snap.Enemies, snap.WeaponLevel, shieldBar(snap.ShieldRatio(), 5))
	c.text(left, top, draw.Pad(status, termWidth))

	c.drawRadar(termWidth, termHeight, snap)

	// Event log, newest at the bottom
	rows := min(len(c.state.events), termHeight-2)
	for i := 0; i < rows; i++ {
		line := c.state.events[len(c.state.events)-rows+i]
		c.text(left+1, top+termHeight-rows+i, draw.ColorDim+draw.Pad(line, 32)+draw.ColorReset)
	}
}

// drawRadar draws the whole-world overview in the top-right corner.
func (c *Client) drawRadar(termWidth, termHeight int, snap *loop.Snapshot) {
	w, h := c.radar.Size()
	col := c.canvasCol() + termWidth - w
	row := c.canvasRow() + 2
	if w+2 > termWidth || h+2 > termHeight {
		return // Not enough space
	}

	c.radar.Clear()
	for i := range snap.Blips {
		b := &snap.Blips[i]
		switch b.Kind {
		case entity.KindAsteroid:
			c.radar.Plot(b.Position, draw.MarkAsteroid)
		case entity.KindEnemy:
			c.radar.Plot(b.Position, draw.MarkEnemy)
		case entity.KindPowerUp:
			c.radar.Plot(b.Position, draw.MarkPowerUp)
		case entity.KindPlayer:
			c.radar.Plot(b.Position, draw.MarkSelf)
		}
	}
	c.radar.Render(c.chunkWriter, col, row)
	for i := 0; i < h; i++ {
		c.canvas.MarkTextDirty(col, row+i, w)
	}
}

// shieldBar renders ratio as a bar of n cells.
func shieldBar(ratio float64, n int) string {
	full := int(math.Round(ratio * float64(n)))
	return strings.Repeat("█", full) + strings.Repeat("░", n-full)
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	c.centered(centerX, centerY-2, "INACTIVITY WARNING")
	c.centered(centerX, centerY, fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	))
	c.centered(centerX, centerY+2, "Press any key to continue")
}

// drawDeadScreen draws the game over screen.
func (c *Client) drawDeadScreen(centerX, centerY int, snap *loop.Snapshot) {
	titleArt := []string{
		`   ___   _   __  __ ___    _____   _____ ___  `,
		`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
		` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
		`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
	}

	titleStartY := centerY - 5
	for i, line := range titleArt {
		c.centered(centerX, titleStartY+i, line)
	}

	c.centered(centerX, titleStartY+len(titleArt)+1, fmt.Sprintf("Score: %d   Wave: %d", snap.Score, snap.Wave))
	prompt := ">>  Press SPACE to Restart  <<"
	if time.Now().UnixMilli()/600%2 != 0 {
		prompt = strings.Repeat(" ", len(prompt))
	}
	c.centered(centerX, titleStartY+len(titleArt)+3, prompt)
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	c.centered(centerX, centerY-3, "SERVER SHUTTING DOWN")
	c.centered(centerX, centerY-1, "The server is restarting for maintenance.")
	c.centered(centerX, centerY, "Please reconnect in a moment.")
	remaining := int(c.state.shutdownTimer) + 1
	c.centered(centerX, centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", remaining))
	c.centered(centerX, centerY+4, "Press Q to disconnect now")
}
