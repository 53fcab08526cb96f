// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text


package motion

import (
	"fmt"
	"log"
	"math"
	"time"

	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/devices/v3/mpu9250"
	"periph.io/x/host/v3"
)

// Counts per g for accelerometer range settings 0-3 (±2g..±16g).
var accelScale = [4]float64{16384, 8192, 4096, 2048}

type imuSource struct {
	imu   *mpu9250.MPU9250
	scale float64
}

// NewIMUSource initializes an MPU9250 over SPI and returns a Source
// that reads acceleration in g and derives pitch/roll with the
// accelerometer-only tilt estimate. Yaw is left at 0 until proper
// fusion is implemented. accelRange selects the count-to-g divisor and
// must match the range programmed into the device (0=±2g default).
func NewIMUSource(spiDev, csPin string, accelRange byte) (Source, error) {
	if accelRange > 3 {
		return nil, fmt.Errorf("accel range must be 0-3, got %d", accelRange)
	}

	// Initialize periph host once.
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}

	cs := gpioreg.ByName(csPin)
	if cs == nil {
		return nil, fmt.Errorf("IMU CS pin %q not found", csPin)
	}

	tr, err := mpu9250.NewSpiTransport(spiDev, cs)
	if err != nil {
		return nil, fmt.Errorf("IMU SPI transport (%s): %w", spiDev, err)
	}

	imu, err := mpu9250.New(tr)
	if err != nil {
		return nil, fmt.Errorf("IMU new device: %w", err)
	}

	if err := imu.Init(); err != nil {
		return nil, fmt.Errorf("IMU init: %w", err)
	}

	// Self-test and calibration are non-fatal: a sensor that fails
	// either still produces usable deltas for gesture detection.
	if _, err := imu.SelfTest(); err != nil {
		log.Printf("Warning: IMU self-test failed: %v", err)
	}
	if err := imu.Calibrate(); err != nil {
		log.Printf("Warning: IMU calibration failed: %v", err)
	}

	return &imuSource{imu: imu, scale: accelScale[accelRange]}, nil
}

// Next reads the accelerometer, converts counts to g, and computes the
// tilt attitude:
//
//	roll  = atan2(ay, az)
//	pitch = atan2(-ax, sqrt(ay² + az²))
func (s *imuSource) Next() (Reading, error) {
	ax, err := s.imu.GetAccelerationX()
	if err != nil {
		return Reading{}, fmt.Errorf("IMU acc X: %w", err)
	}
	ay, err := s.imu.GetAccelerationY()
	if err != nil {
		return Reading{}, fmt.Errorf("IMU acc Y: %w", err)
	}
	az, err := s.imu.GetAccelerationZ()
	if err != nil {
		return Reading{}, fmt.Errorf("IMU acc Z: %w", err)
	}

	now := time.Now()

	fx := float64(ax) / s.scale
	fy := float64(ay) / s.scale
	fz := float64(az) / s.scale

	return Reading{
		Accel: Sample{Ax: fx, Ay: fy, Az: fz, Time: now},
		Attitude: Attitude{
			Pitch: math.Atan2(-fx, math.Sqrt(fy*fy+fz*fz)),
			Roll:  math.Atan2(fy, fz),
			Yaw:   0, // placeholder; to be replaced with fused yaw later
			Time:  now,
		},
	}, nil
}
