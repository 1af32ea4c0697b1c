package experiments

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type GameRecord struct {
	ID        int
	Agent1    int // AgentConfig.ID
	Agent2    int // AgentConfig.ID
	Winner    string
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
	Turns     int
	RedScore  int
	BlueScore int
}

type MoveRecord struct {
	Game         int // GameRecord.ID
	Step         int
	Player       string
	Move         string
	Duration     time.Duration
	Episodes     int64
	FullPlayouts int64
	Cutoffs      int64
	IsTreeReused bool
}

// Writer stores one experiment run under a timestamped directory.
type Writer struct {
	baseDir string
}

func NewWriter(resultDir, name string) (*Writer, error) {
	// Create a subfolder named by current timestamp
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(resultDir, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) BaseDir() string { return w.baseDir }

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	path := filepath.Join(w.baseDir, "agent_configs.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create agent configs file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"id", "kind", "clock", "steps", "sim_ceiling", "seed"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write agent configs header: %w", err)
	}

	for _, config := range configs {
		row := []string{
			strconv.Itoa(config.ID),
			config.Kind,
			config.Clock.String(),
			strconv.Itoa(config.Steps),
			strconv.Itoa(config.SimCeiling),
			strconv.FormatUint(config.Seed, 10),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write agent config row: %w", err)
		}
	}

	return nil
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	path := filepath.Join(w.baseDir, "game_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create game records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"id", "agent1", "agent2", "winner", "start_time", "end_time", "duration", "turns", "red_score", "blue_score"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write game records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			record.Winner,
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.Turns),
			strconv.Itoa(record.RedScore),
			strconv.Itoa(record.BlueScore),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write game record row: %w", err)
		}
	}

	return nil
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	path := filepath.Join(w.baseDir, "move_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create move records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"game", "step", "player", "move", "duration", "episodes", "full_playouts", "cutoffs", "is_tree_reused"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write move records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Player,
			record.Move,
			record.Duration.String(),
			strconv.FormatInt(record.Episodes, 10),
			strconv.FormatInt(record.FullPlayouts, 10),
			strconv.FormatInt(record.Cutoffs, 10),
			strconv.FormatBool(record.IsTreeReused),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write move record row: %w", err)
		}
	}

	return nil
}
