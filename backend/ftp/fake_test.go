package ftp

import (
	"bytes"
	"io"
	"net/textproto"
	"path"
	"sort"
	"sync"
	"time"

	_ftp "github.com/jlaffaye/ftp"
)

// fakeFTP is an in-memory Client.  Like most servers, MKD needs the parent directory, STOR needs the target directory
// and missing paths fail with reply code 550.
type fakeFTP struct {
	mu     sync.Mutex
	files  map[string][]byte
	times  map[string]time.Time
	dirs   map[string]bool
	clock  time.Time
	calls  []string
	failOn string
}

func newFakeFTP(dirs ...string) *fakeFTP {
	f := &fakeFTP{
		files: make(map[string][]byte),
		times: make(map[string]time.Time),
		dirs:  map[string]bool{"/": true},
		clock: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
	}
	for _, dir := range dirs {
		for d := path.Clean(dir); d != "/"; d = path.Dir(d) {
			f.dirs[d] = true
		}
	}
	return f
}

func reply(code int, msg string) error {
	return &textproto.Error{Code: code, Msg: msg}
}

func (f *fakeFTP) call(name string) error {
	f.calls = append(f.calls, name)
	if f.failOn == name {
		return reply(451, "Requested action aborted: local error in processing")
	}
	return nil
}

func (f *fakeFTP) ChangeDir(p string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("ChangeDir"); err != nil {
		return err
	}
	if !f.dirs[path.Clean(p)] {
		return reply(550, "No such file or directory")
	}
	return nil
}

func (f *fakeFTP) List(p string) ([]*_ftp.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("List"); err != nil {
		return nil, err
	}
	dir := path.Clean(p)
	if !f.dirs[dir] {
		return nil, reply(550, "No such file or directory")
	}

	var entries []*_ftp.Entry
	for d := range f.dirs {
		if d != "/" && path.Dir(d) == dir {
			entries = append(entries, &_ftp.Entry{Name: path.Base(d), Type: _ftp.EntryTypeFolder, Time: f.clock})
		}
	}
	for name, data := range f.files {
		if path.Dir(name) == dir {
			entries = append(entries, &_ftp.Entry{
				Name: path.Base(name),
				Type: _ftp.EntryTypeFile,
				Size: uint64(len(data)),
				Time: f.times[name],
			})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

func (f *fakeFTP) MakeDir(p string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("MakeDir"); err != nil {
		return err
	}
	dir := path.Clean(p)
	if f.dirs[dir] || !f.dirs[path.Dir(dir)] {
		return reply(550, "Can't create directory")
	}
	f.dirs[dir] = true
	return nil
}

func (f *fakeFTP) Retr(p string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("Retr"); err != nil {
		return nil, err
	}
	data, ok := f.files[path.Clean(p)]
	if !ok {
		return nil, reply(550, "No such file or directory")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeFTP) store(name string, r io.Reader, appendTo bool) error {
	name = path.Clean(name)
	if !f.dirs[path.Dir(name)] {
		return reply(553, "Could not create file")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if appendTo {
		data = append(f.files[name], data...)
	}
	f.clock = f.clock.Add(time.Minute)
	f.files[name] = data
	f.times[name] = f.clock
	return nil
}

func (f *fakeFTP) Stor(p string, r io.Reader) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("Stor"); err != nil {
		return err
	}
	return f.store(p, r, false)
}

func (f *fakeFTP) Append(p string, r io.Reader) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("Append"); err != nil {
		return err
	}
	return f.store(p, r, true)
}

func (f *fakeFTP) Delete(p string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("Delete"); err != nil {
		return err
	}
	name := path.Clean(p)
	if _, ok := f.files[name]; !ok {
		return reply(550, "No such file or directory")
	}
	delete(f.files, name)
	delete(f.times, name)
	return nil
}

func (f *fakeFTP) Quit() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.call("Quit")
}
