package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"tictac/game"
)

// AgentConfig describes one side of a match as it was configured.
type AgentConfig struct {
	Mark        game.Mark
	Name        string
	Iterations  int
	Confidence  float64
	Temperature float64
	Seed        uint64
}

type GameRecord struct {
	ID     string // uuid
	XAgent string
	OAgent string
	Reward float64
	GameMetric
}

type MoveRecord struct {
	Game string // GameRecord.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates a subfolder of root named by the current timestamp.
func NewWriter(root string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405.000000000Z")
	baseDir := filepath.Join(root, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"mark", "name", "iterations", "confidence", "temperature", "seed"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			string(config.Mark),
			config.Name,
			strconv.Itoa(config.Iterations),
			strconv.FormatFloat(config.Confidence, 'g', -1, 64),
			strconv.FormatFloat(config.Temperature, 'g', -1, 64),
			strconv.FormatUint(config.Seed, 10),
		})
	}
	return w.write("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "x_agent", "o_agent", "starting_mark", "winner", "reward", "start_time", "end_time", "duration", "total_moves"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.ID,
			record.XAgent,
			record.OAgent,
			string(record.StartingMark),
			record.Winner,
			strconv.FormatFloat(record.Reward, 'g', -1, 64),
			record.StartTime.Format(time.RFC3339Nano),
			record.EndTime.Format(time.RFC3339Nano),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
		})
	}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "mark", "agent", "duration", "episodes", "tree_size", "root_visits"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.Game,
			strconv.Itoa(record.Step),
			string(record.Mark),
			record.Agent,
			record.Duration.String(),
			strconv.Itoa(record.Episodes),
			strconv.Itoa(record.TreeSize),
			strconv.Itoa(record.RootVisits),
		})
	}
	return w.write("move_records.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}
