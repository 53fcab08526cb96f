package motion

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	serial "github.com/jacobsa/go-serial/serial"
)

type serialSource struct {
	port   io.ReadCloser
	reader *bufio.Reader
}

// NewSerialSource opens a serial port carrying motion records from an
// external sensor board, one CSV line per reading:
//
//	ax,ay,az,pitch,roll,yaw
//
// with acceleration in g and angles in radians. Malformed lines are
// skipped, the way noisy serial streams are handled elsewhere.
func NewSerialSource(portName string, baudRate uint) (Source, error) {
	opts := serial.OpenOptions{
		PortName:              portName,
		BaudRate:              baudRate,
		DataBits:              8,
		StopBits:              1,
		MinimumReadSize:       1,
		ParityMode:            serial.PARITY_NONE,
		InterCharacterTimeout: 0,
	}

	port, err := serial.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", portName, err)
	}
	log.Printf("motion serial port opened on %s at %d baud", portName, baudRate)

	return &serialSource{port: port, reader: bufio.NewReader(port)}, nil
}

func (s *serialSource) Next() (Reading, error) {
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			return Reading{}, fmt.Errorf("serial read: %w", err)
		}

		reading, ok := parseSerialLine(strings.TrimSpace(line))
		if !ok {
			continue
		}
		return reading, nil
	}
}

// parseSerialLine parses one CSV motion record. Returns false for
// blank or malformed lines so the caller can keep reading.
func parseSerialLine(line string) (Reading, bool) {
	if line == "" {
		return Reading{}, false
	}

	fields := strings.Split(line, ",")
	if len(fields) != 6 {
		return Reading{}, false
	}

	vals := make([]float64, 6)
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return Reading{}, false
		}
		vals[i] = v
	}

	now := time.Now()
	return Reading{
		Accel:    Sample{Ax: vals[0], Ay: vals[1], Az: vals[2], Time: now},
		Attitude: Attitude{Pitch: vals[3], Roll: vals[4], Yaw: vals[5], Time: now},
	}, true
}
