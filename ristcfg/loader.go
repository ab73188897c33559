/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package ristcfg

import (
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	netproto "github.com/nabbar/golib/network/protocol"
)

// decodeHooks composes the NetworkProtocol decoder with viper's own
// default string-to-time.Duration / string-to-slice hooks, matching the
// hook chain every Unmarshal/UnmarshalKey call in this package uses.
func decodeHooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		netproto.ViperDecoderHook(),
	)
}

// Loader reads one relay's tunables from a viper-backed file and keeps
// the most recently decoded Config available to concurrent readers,
// refreshing it whenever the file changes on disk.
type Loader struct {
	key string
	vpr *viper.Viper

	mu  sync.RWMutex
	cur Config

	onChange func(Config)
}

// NewLoader returns a Loader that reads Config from key within path. An
// empty key decodes the whole file as a single Config.
func NewLoader(path, key string) (*Loader, error) {
	if path == "" {
		return nil, ErrorConfigFileMissing.Error()
	}

	vpr := viper.New()
	vpr.SetConfigFile(path)

	if err := vpr.ReadInConfig(); err != nil {
		return nil, ErrorConfigFileInvalid.Error()
	}

	l := &Loader{key: key, vpr: vpr}

	cfg, err := l.decode()
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.cur = cfg
	l.mu.Unlock()

	return l, nil
}

func (l *Loader) decode() (Config, error) {
	cfg := Default()

	var err error

	opt := viper.DecodeHook(decodeHooks())

	if l.key == "" {
		err = l.vpr.Unmarshal(&cfg, opt)
	} else {
		err = l.vpr.UnmarshalKey(l.key, &cfg, opt)
	}

	if err != nil {
		return Config{}, fmt.Errorf("decoding configuration: %w", err)
	}

	cfg.applyDefaults()

	if err = cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Current returns the most recently decoded, validated Config.
func (l *Loader) Current() Config {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cur
}

// OnChange registers fn to be called, with the newly decoded Config,
// every time the watched file changes and re-decodes successfully. A
// re-decode that fails Validate leaves Current untouched and fn is not
// called; the caller keeps running on its last-known-good Config.
func (l *Loader) OnChange(fn func(Config)) {
	l.mu.Lock()
	l.onChange = fn
	l.mu.Unlock()
}

// Watch starts watching the underlying file for changes, decoding and
// swapping in a new Config on every write. It returns immediately; the
// watch runs until the process exits, matching viper.WatchConfig's own
// fire-and-forget contract.
func (l *Loader) Watch() {
	l.vpr.OnConfigChange(func(_ fsnotify.Event) {
		cfg, err := l.decode()
		if err != nil {
			return
		}

		l.mu.Lock()
		l.cur = cfg
		fn := l.onChange
		l.mu.Unlock()

		if fn != nil {
			fn(cfg)
		}
	})
	l.vpr.WatchConfig()
}
