// ABOUTME: Plays a short confirmation sound on a named playback device.
// ABOUTME: Uses malgo (miniaudio bindings) for output and beep/go-audio decoders.

package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unsafe"

	"github.com/gen2brain/malgo"
	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/flac"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"

	"github.com/777genius/audio-switcher/internal/logging"
)

const playbackTimeout = 10 * time.Second

// DeviceInfo represents a playback device as seen by the audio backend
type DeviceInfo struct {
	Name      string
	IsDefault bool
}

// pcm is decoded interleaved 16-bit audio
type pcm struct {
	samples    []int16
	sampleRate uint32
	channels   int
}

type decodeFunc func(f *os.File) (pcm, error)

var decoders = map[string]decodeFunc{
	".mp3":  decodeBeep(func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return mp3.Decode(f) }),
	".wav":  decodeBeep(func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return wav.Decode(f) }),
	".flac": decodeBeep(func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return flac.Decode(f) }),
	".ogg":  decodeBeep(func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return vorbis.Decode(f) }),
	".aiff": decodeAIFF,
	".aif":  decodeAIFF,
}

// Player plays audio on one device
type Player struct {
	ctx        *malgo.AllocatedContext
	deviceID   unsafe.Pointer
	deviceName string
	volume     float64
	mu         sync.Mutex
}

// ListDevices returns all playback devices known to the backend
func ListDevices() ([]DeviceInfo, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to init audio context: %w", err)
	}
	defer func() {
		_ = ctx.Uninit()
		ctx.Free()
	}()

	devices, err := ctx.Devices(malgo.Playback)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate devices: %w", err)
	}

	result := make([]DeviceInfo, 0, len(devices))
	for _, dev := range devices {
		result = append(result, DeviceInfo{
			Name:      dev.Name(),
			IsDefault: dev.IsDefault != 0,
		})
	}
	return result, nil
}

// NewPlayer creates a player bound to deviceName.
// An empty name selects the system default device.
func NewPlayer(deviceName string, volume float64) (*Player, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to init audio context: %w", err)
	}

	player := &Player{
		ctx:        ctx,
		deviceName: deviceName,
		volume:     volume,
	}
	if deviceName == "" {
		return player, nil
	}

	devices, err := ctx.Devices(malgo.Playback)
	if err != nil {
		player.release()
		return nil, fmt.Errorf("failed to enumerate devices: %w", err)
	}
	for _, dev := range devices {
		if dev.Name() == deviceName {
			player.deviceID = dev.ID.Pointer()
			logging.Debug("Audio device found: %s", deviceName)
			return player, nil
		}
	}

	player.release()
	return nil, fmt.Errorf("audio device not found: %s", deviceName)
}

// Play decodes soundPath and blocks until playback finishes or times out
func (p *Player) Play(soundPath string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ctx == nil {
		return fmt.Errorf("player is closed")
	}

	data, err := decodeFile(soundPath)
	if err != nil {
		return err
	}
	applyVolume(data.samples, p.volume)
	audioData := samplesToBytes(data.samples)

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	deviceConfig.Playback.Format = malgo.FormatS16
	deviceConfig.Playback.Channels = uint32(data.channels)
	deviceConfig.SampleRate = data.sampleRate
	deviceConfig.PeriodSizeInFrames = 4096
	deviceConfig.Periods = 4
	deviceConfig.Alsa.NoMMap = 1
	if p.deviceID != nil {
		deviceConfig.Playback.DeviceID = p.deviceID
	}

	var (
		pos      int
		done     = make(chan struct{})
		doneOnce sync.Once
	)
	frameBytes := data.channels * 2

	onData := func(out, _ []byte, frameCount uint32) {
		n := copy(out[:min(len(out), int(frameCount)*frameBytes)], audioData[pos:])
		pos += n
		clear(out[n:])
		if pos >= len(audioData) {
			doneOnce.Do(func() { close(done) })
		}
	}

	device, err := malgo.InitDevice(p.ctx.Context, deviceConfig, malgo.DeviceCallbacks{Data: onData})
	if err != nil {
		return fmt.Errorf("failed to init audio device: %w", err)
	}
	defer device.Uninit()

	if err := device.Start(); err != nil {
		return fmt.Errorf("failed to start audio device: %w", err)
	}

	select {
	case <-done:
		// let the device drain its last period
		time.Sleep(200 * time.Millisecond)
		logging.Debug("Chime played on %q: %s", p.deviceName, soundPath)
	case <-time.After(playbackTimeout):
		logging.Warn("Audio playback timeout: %s", soundPath)
	}

	_ = device.Stop()
	return nil
}

// Close releases the backend context
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.release()
	return nil
}

func (p *Player) release() {
	if p.ctx != nil {
		_ = p.ctx.Uninit()
		p.ctx.Free()
		p.ctx = nil
	}
}

func decodeFile(soundPath string) (pcm, error) {
	ext := strings.ToLower(filepath.Ext(soundPath))
	decode, ok := decoders[ext]
	if !ok {
		return pcm{}, fmt.Errorf("unsupported audio format: %s", ext)
	}

	f, err := os.Open(soundPath)
	if err != nil {
		return pcm{}, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer f.Close()

	data, err := decode(f)
	if err != nil {
		return pcm{}, fmt.Errorf("failed to decode audio: %w", err)
	}
	if data.channels < 1 {
		return pcm{}, fmt.Errorf("failed to decode audio: no channels in %s", soundPath)
	}
	return data, nil
}

func decodeBeep(open func(f *os.File) (beep.StreamSeekCloser, beep.Format, error)) decodeFunc {
	return func(f *os.File) (pcm, error) {
		streamer, format, err := open(f)
		if err != nil {
			return pcm{}, err
		}
		defer streamer.Close()

		channels := format.NumChannels
		if channels > 2 {
			channels = 2
		}
		return pcm{
			samples:    streamToSamples(streamer, channels),
			sampleRate: uint32(format.SampleRate),
			channels:   channels,
		}, nil
	}
}

func decodeAIFF(f *os.File) (pcm, error) {
	decoder := aiff.NewDecoder(f)
	if !decoder.IsValidFile() {
		return pcm{}, fmt.Errorf("invalid AIFF file")
	}
	decoder.ReadInfo()

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return pcm{}, fmt.Errorf("failed to read AIFF data: %w", err)
	}
	return pcm{
		samples:    intBufferToSamples(buf, int(decoder.BitDepth)),
		sampleRate: uint32(decoder.SampleRate),
		channels:   int(decoder.NumChans),
	}, nil
}

// streamToSamples drains a beep streamer into interleaved int16 samples
func streamToSamples(streamer beep.Streamer, channels int) []int16 {
	var out []int16
	buf := make([][2]float64, 512)
	for {
		n, ok := streamer.Stream(buf)
		for _, frame := range buf[:n] {
			out = append(out, int16(frame[0]*32767))
			if channels == 2 {
				out = append(out, int16(frame[1]*32767))
			}
		}
		if !ok || n == 0 {
			return out
		}
	}
}

// intBufferToSamples scales go-audio samples of the given bit depth to 16 bits
func intBufferToSamples(buf *goaudio.IntBuffer, bitDepth int) []int16 {
	shift := 0
	switch bitDepth {
	case 8:
		shift = -8
	case 24:
		shift = 8
	case 32:
		shift = 16
	}

	samples := make([]int16, len(buf.Data))
	for i, v := range buf.Data {
		if shift < 0 {
			samples[i] = int16(v << -shift)
		} else {
			samples[i] = int16(v >> shift)
		}
	}
	return samples
}

func applyVolume(samples []int16, volume float64) {
	if volume >= 1.0 {
		return
	}
	for i := range samples {
		samples[i] = int16(float64(samples[i]) * volume)
	}
}

// samplesToBytes converts int16 samples to little-endian bytes
func samplesToBytes(samples []int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		out[i*2] = byte(s)
		out[i*2+1] = byte(s >> 8)
	}
	return out
}
