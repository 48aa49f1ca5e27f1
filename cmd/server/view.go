package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/emlai/zenith-sub000/internal/domain"
	"github.com/emlai/zenith-sub000/internal/engine"
	"github.com/emlai/zenith-sub000/internal/render"
	"github.com/emlai/zenith-sub000/pkg/logger"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
)

type viewConfig struct {
	load string
}

func newViewCmd(root *rootOptions) *cobra.Command {
	cfg := &viewConfig{}

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Play in the terminal",
		Long: `Opens the world in the terminal. Arrows or hjklyubn move, '.' waits,
'>' and '<' change level, 'S' saves, Esc or q quits.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			game, err := root.newGame(cfg.load)
			if err != nil {
				return err
			}
			screen, err := tcell.NewScreen()
			if err != nil {
				return err
			}
			if err := screen.Init(); err != nil {
				return err
			}
			defer screen.Fini()
			// Экран принадлежит tcell: логи в терминал здесь только мешают.
			logger.SetOutput(io.Discard)
			return runView(cmd.Context(), game, screen)
		},
	}

	cmd.Flags().StringVar(&cfg.load, "load", "", "load a save file instead of generating a new world")
	return cmd
}

var runeDirections = map[rune][2]int{
	'h': {-1, 0}, 'l': {1, 0}, 'k': {0, -1}, 'j': {0, 1},
	'y': {-1, -1}, 'u': {1, -1}, 'b': {-1, 1}, 'n': {1, 1},
}

var keyDirections = map[tcell.Key][2]int{
	tcell.KeyLeft: {-1, 0}, tcell.KeyRight: {1, 0},
	tcell.KeyUp: {0, -1}, tcell.KeyDown: {0, 1},
}

// keyCommand переводит нажатие в команду игрока.
func keyCommand(ev *tcell.EventKey) (engine.Command, bool) {
	if d, ok := keyDirections[ev.Key()]; ok {
		return engine.Command{Action: engine.ActionMove, Dx: d[0], Dy: d[1]}, true
	}
	if ev.Key() != tcell.KeyRune {
		return engine.Command{}, false
	}
	if d, ok := runeDirections[ev.Rune()]; ok {
		return engine.Command{Action: engine.ActionMove, Dx: d[0], Dy: d[1]}, true
	}
	switch ev.Rune() {
	case '.':
		return engine.Command{Action: engine.ActionWait}, true
	case '>':
		return engine.Command{Action: engine.ActionDescend}, true
	case '<':
		return engine.Command{Action: engine.ActionAscend}, true
	}
	return engine.Command{}, false
}

func isQuit(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
		(ev.Key() == tcell.KeyRune && ev.Rune() == 'q')
}

// runView - цикл терминального режима. Мир меняется только здесь.
func runView(ctx context.Context, game *engine.Game, screen tcell.Screen) error {
	if ctx == nil {
		ctx = context.Background()
	}
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	status := ""
	drawView(game, screen, status)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if isQuit(ev) {
					return nil
				}
				if ev.Key() == tcell.KeyRune && ev.Rune() == 'S' {
					info, err := game.Save(ctx, game.SavePath(time.Now()))
					if err != nil {
						status = "save failed: " + err.Error()
					} else {
						status = "saved " + info.Path
					}
					break
				}
				if cmd, ok := keyCommand(ev); ok && game.Apply(cmd) {
					if err := game.Tick(ctx); err != nil {
						return nil
					}
					status = ""
				}
			case *tcell.EventResize:
				screen.Sync()
			}
			drawView(game, screen, status)
		}
	}
}

// drawView рисует область вокруг игрока на весь экран, последняя строка - статус.
func drawView(game *engine.Game, screen tcell.Screen, status string) {
	w, h := screen.Size()
	if h > 1 {
		h--
	}
	pos, level := game.PlayerPos()
	screen.Clear()
	region := domain.Rect{X: pos.X - w/2, Y: pos.Y - h/2, W: w, H: h}
	game.Render(region, level, render.NewScreenCanvas(screen))

	line := fmt.Sprintf("turn %d  level %d  (%d,%d)  hp %d  areas %d  %s",
		game.Turn(), level, pos.X, pos.Y, game.Player.HP, game.World.AreaCount(), status)
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, r := range []rune(line) {
		if i >= w {
			break
		}
		screen.SetContent(i, h, r, nil, style)
	}
	screen.Show()
}
