package messages

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	snapshotfb "github.com/cbodonnell/snake/flatbuffers/snapshot"
	"github.com/cbodonnell/snake/pkg/game/types"
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/klauspost/compress/zstd"
)

func SerializeMessage(m *Message) ([]byte, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize message: %v", err)
	}
	return b, nil
}

func DeserializeMessage(data []byte) (*Message, error) {
	message := &Message{}
	if err := json.Unmarshal(data, message); err != nil {
		return nil, fmt.Errorf("failed to deserialize message: %v", err)
	}
	if message.Type == "" {
		return nil, fmt.Errorf("message has no type")
	}
	return message, nil
}

// SerializeSnapshot encodes a snapshot as a zstd compressed flatbuffer.
func SerializeSnapshot(snapshot types.Snapshot) ([]byte, error) {
	b := SerializeSnapshotFlatbuffer(snapshot)

	compressed := bytes.NewBuffer(nil)
	compWriter, err := zstd.NewWriter(compressed, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd writer: %v", err)
	}
	if _, err := compWriter.Write(b); err != nil {
		return nil, fmt.Errorf("failed to compress snapshot: %v", err)
	}
	if err := compWriter.Close(); err != nil {
		return nil, fmt.Errorf("failed to close zstd writer: %v", err)
	}

	return compressed.Bytes(), nil
}

func DeserializeSnapshot(data []byte) (types.Snapshot, error) {
	compReader, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return types.Snapshot{}, fmt.Errorf("failed to create zstd reader: %v", err)
	}
	defer compReader.Close()

	b, err := io.ReadAll(compReader)
	if err != nil {
		return types.Snapshot{}, fmt.Errorf("failed to read decompressed snapshot: %v", err)
	}

	snapshot, err := DeserializeSnapshotFlatbuffer(b)
	if err != nil {
		return types.Snapshot{}, fmt.Errorf("failed to deserialize snapshot: %v", err)
	}

	return snapshot, nil
}

func SerializeSnapshotFlatbuffer(snapshot types.Snapshot) []byte {
	builder := flatbuffers.NewBuilder(64 + 8*len(snapshot.Snake))

	gameID := builder.CreateString(snapshot.GameID)

	snapshotfb.SnapshotStartSnakeVector(builder, len(snapshot.Snake))
	for i := len(snapshot.Snake) - 1; i >= 0; i-- {
		snapshotfb.CreateCell(builder, int32(snapshot.Snake[i].X), int32(snapshot.Snake[i].Y))
	}
	snake := builder.EndVector(len(snapshot.Snake))

	snapshotfb.SnapshotStart(builder)
	snapshotfb.SnapshotAddGameId(builder, gameID)
	snapshotfb.SnapshotAddTick(builder, snapshot.Tick)
	snapshotfb.SnapshotAddSnake(builder, snake)
	snapshotfb.SnapshotAddFood(builder, snapshotfb.CreateCell(builder, int32(snapshot.Food.X), int32(snapshot.Food.Y)))
	snapshotfb.SnapshotAddGridSize(builder, int32(snapshot.GridSize))
	snapshotfb.SnapshotAddScore(builder, int32(snapshot.Score))
	snapshotfb.SnapshotAddPhase(builder, phaseToFlatbuffer(snapshot.Phase))
	offset := snapshotfb.SnapshotEnd(builder)
	snapshotfb.FinishSnapshotBuffer(builder, offset)

	return builder.FinishedBytes()
}

func DeserializeSnapshotFlatbuffer(b []byte) (snapshot types.Snapshot, err error) {
	// the generated accessors panic on truncated buffers
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed snapshot flatbuffer: %v", r)
		}
	}()

	snapshotFlatbuffer := snapshotfb.GetRootAsSnapshot(b, 0)
	snapshot.GameID = string(snapshotFlatbuffer.GameId())
	snapshot.Tick = snapshotFlatbuffer.Tick()
	snapshot.GridSize = int(snapshotFlatbuffer.GridSize())
	snapshot.Score = int(snapshotFlatbuffer.Score())

	phase, err := phaseFromFlatbuffer(snapshotFlatbuffer.Phase())
	if err != nil {
		return types.Snapshot{}, err
	}
	snapshot.Phase = phase

	cell := &snapshotfb.Cell{}
	snake := make([]types.Cell, 0, snapshotFlatbuffer.SnakeLength())
	for i := 0; i < snapshotFlatbuffer.SnakeLength(); i++ {
		if !snapshotFlatbuffer.Snake(cell, i) {
			return types.Snapshot{}, fmt.Errorf("failed to get snake cell at index %d", i)
		}
		snake = append(snake, types.Cell{X: int(cell.X()), Y: int(cell.Y())})
	}
	snapshot.Snake = snake

	if food := snapshotFlatbuffer.Food(cell); food != nil {
		snapshot.Food = types.Cell{X: int(food.X()), Y: int(food.Y())}
	}

	return snapshot, nil
}

func phaseToFlatbuffer(phase types.Phase) snapshotfb.Phase {
	switch phase {
	case types.PhaseRunning:
		return snapshotfb.PhaseRunning
	case types.PhaseGameOver:
		return snapshotfb.PhaseGameOver
	default:
		return snapshotfb.PhaseIdle
	}
}

func phaseFromFlatbuffer(phase snapshotfb.Phase) (types.Phase, error) {
	switch phase {
	case snapshotfb.PhaseIdle:
		return types.PhaseIdle, nil
	case snapshotfb.PhaseRunning:
		return types.PhaseRunning, nil
	case snapshotfb.PhaseGameOver:
		return types.PhaseGameOver, nil
	}
	return 0, fmt.Errorf("unknown phase %s", phase)
}
