// Command bucketsh is an interactive shell for exercising the containers in
// pkg/bucket by hand: create one of the four container kinds and push,
// pop, insert, or look up values against it.
//
// Usage:
//
//	bucketsh [-C dir]
//
// REPL commands:
//
//	new bucket <cap>               Create a fixed-capacity slot array
//	new hashbucket <cap>           Create a fixed-capacity hash table
//	new fixeddeque <cap>           Create a fixed-capacity deque
//	new deque <cap>                Create a growable deque
//	insert <i> <v>                 Bucket: place v at slot i
//	get <i>                        Bucket/deque: read slot i
//	remove <i>                     Bucket: clear slot i
//	add <key> <v>                  Hashbucket: insert by key
//	contains <key>                 Hashbucket: report whether key is present
//	hget <key>                     Hashbucket: look up value by key
//	hremove <key>                  Hashbucket: delete by key
//	push front|back <v>            Deque/fixeddeque: add at an end
//	pop front|back                 Deque/fixeddeque: take from an end
//	peek front|back                Deque/fixeddeque: read without removing
//	len                            Current occupancy
//	cap                            Current capacity
//	iter                           List all live entries
//	help                           Show this help
//	exit / quit / q                Exit
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/peterh/liner"

	"github.com/theraot/hashbucket/pkg/bucket"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	workDir := flag.StringP("dir", "C", ".", "working directory to look for "+ConfigFileName+" in")
	flag.Parse()

	cfg, cfgPath, err := LoadConfig(*workDir)
	if err != nil {
		return err
	}

	repl := &REPL{cfg: cfg}

	if cfgPath != "" {
		fmt.Fprintf(os.Stderr, "loaded config: %s\n", cfgPath)
	}

	return repl.Run()
}

type kind int

const (
	kindNone kind = iota
	kindBucket
	kindHashBucket
	kindFixedDeque
	kindDeque
)

func (k kind) String() string {
	switch k {
	case kindBucket:
		return "bucket"
	case kindHashBucket:
		return "hashbucket"
	case kindFixedDeque:
		return "fixeddeque"
	case kindDeque:
		return "deque"
	default:
		return "(none)"
	}
}

// REPL is the interactive command loop. Exactly one container is active at
// a time; "new <kind> <cap>" replaces it.
type REPL struct {
	cfg Config

	active kind

	bucketC     *bucket.Bucket[string]
	hashBucketC *bucket.FixedSizeHashBucket[string, string]
	fixedDequeC *bucket.FixedSizeDeque[string]
	dequeC      *bucket.Deque[string]

	liner *liner.State
}

// historyFile returns the path to the history file.
func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".bucketsh_history")
}

func (r *REPL) Run() error {
	r.liner = liner.NewLiner()
	defer r.liner.Close()

	r.liner.SetCtrlCAborts(true)
	r.liner.SetCompleter(r.completer)

	if f, err := os.Open(historyFile()); err == nil {
		r.liner.ReadHistory(f)
		f.Close()
	}

	fmt.Printf("bucketsh (default_capacity=%d)\n", r.cfg.DefaultCapacity)
	fmt.Println("Type 'help' for available commands.")
	fmt.Println()

	for {
		line, err := r.liner.Prompt(r.prompt())
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Println("\nBye!")

				break
			}

			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		r.liner.AppendHistory(line)

		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "exit", "quit", "q":
			fmt.Println("Bye!")
			r.saveHistory()

			return nil

		case "help", "?":
			r.printHelp()

		case "new":
			r.cmdNew(args)

		case "insert":
			r.cmdInsert(args)

		case "get":
			r.cmdGet(args)

		case "remove":
			r.cmdRemove(args)

		case "add":
			r.cmdAdd(args)

		case "contains":
			r.cmdContains(args)

		case "hget":
			r.cmdHGet(args)

		case "hremove":
			r.cmdHRemove(args)

		case "push":
			r.cmdPush(args)

		case "pop":
			r.cmdPop(args)

		case "peek":
			r.cmdPeek(args)

		case "len":
			r.cmdLen()

		case "cap":
			r.cmdCap()

		case "iter":
			r.cmdIter()

		default:
			fmt.Printf("Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}

	r.saveHistory()

	return nil
}

func (r *REPL) prompt() string {
	return fmt.Sprintf("bucketsh[%s]> ", r.active)
}

func (r *REPL) saveHistory() {
	if path := historyFile(); path != "" {
		if f, err := os.Create(path); err == nil {
			r.liner.WriteHistory(f)
			f.Close()
		}
	}
}

func (r *REPL) completer(line string) []string {
	commands := []string{
		"new bucket", "new hashbucket", "new fixeddeque", "new deque",
		"insert", "get", "remove",
		"add", "contains", "hget", "hremove",
		"push front", "push back", "pop front", "pop back", "peek front", "peek back",
		"len", "cap", "iter", "help", "exit", "quit", "q",
	}

	var completions []string

	lower := strings.ToLower(line)

	for _, cmd := range commands {
		if strings.HasPrefix(cmd, lower) {
			completions = append(completions, cmd)
		}
	}

	return completions
}

func (r *REPL) printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  new bucket|hashbucket|fixeddeque|deque <cap>   Create a container")
	fmt.Println("  insert <i> <v>                                 Bucket: place v at slot i")
	fmt.Println("  get <i>                                        Bucket/deque: read slot i")
	fmt.Println("  remove <i>                                     Bucket: clear slot i")
	fmt.Println("  add <key> <v>                                  Hashbucket: insert by key")
	fmt.Println("  contains <key>                                 Hashbucket: membership test")
	fmt.Println("  hget <key>                                     Hashbucket: value lookup")
	fmt.Println("  hremove <key>                                  Hashbucket: delete by key")
	fmt.Println("  push front|back <v>                            Deque/fixeddeque: add at an end")
	fmt.Println("  pop front|back                                 Deque/fixeddeque: take from an end")
	fmt.Println("  peek front|back                                Deque/fixeddeque: read without removing")
	fmt.Println("  len                                            Current occupancy")
	fmt.Println("  cap                                            Current capacity")
	fmt.Println("  iter                                           List all live entries")
	fmt.Println("  help                                           Show this help")
	fmt.Println("  exit / quit / q                                Exit")
}

func (r *REPL) cmdNew(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: new bucket|hashbucket|fixeddeque|deque <cap>")

		return
	}

	capacity := r.cfg.DefaultCapacity

	if len(args) >= 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			fmt.Println("Error: cap must be a positive integer")

			return
		}

		capacity = n
	}

	switch strings.ToLower(args[0]) {
	case "bucket":
		r.bucketC = bucket.NewBucket[string](capacity)
		r.active = kindBucket

	case "hashbucket":
		r.hashBucketC = bucket.NewFixedSizeHashBucket[string, string](capacity, r.hash)
		r.active = kindHashBucket

	case "fixeddeque":
		r.fixedDequeC = bucket.NewFixedSizeDeque[string](capacity)
		r.active = kindFixedDeque

	case "deque":
		r.dequeC = bucket.NewDeque[string](capacity)
		r.active = kindDeque

	default:
		fmt.Printf("Unknown container kind: %s\n", args[0])

		return
	}

	fmt.Printf("OK: created %s with capacity %d\n", r.active, capacity)
}

func (r *REPL) hash(s string) uint64 {
	h := r.cfg.HashSeed
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= 1099511628211
	}

	return h
}

func (r *REPL) cmdInsert(args []string) {
	if r.active != kindBucket {
		fmt.Println("insert requires an active bucket (new bucket <cap>)")

		return
	}

	if len(args) < 2 {
		fmt.Println("Usage: insert <i> <v>")

		return
	}

	i, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Printf("Error parsing index: %v\n", err)

		return
	}

	if i < 0 || i >= r.bucketC.Capacity() {
		fmt.Println("rejected: index out of range")

		return
	}

	if r.bucketC.Insert(i, args[1]) {
		fmt.Println("OK")
	} else {
		fmt.Println("rejected: slot occupied or index out of range")
	}
}

func (r *REPL) cmdGet(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: get <i>")

		return
	}

	i, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Printf("Error parsing index: %v\n", err)

		return
	}

	var (
		v  string
		ok bool
	)

	switch r.active {
	case kindBucket:
		v, ok = r.bucketC.TryGet(i)
	case kindFixedDeque:
		v, ok = r.fixedDequeC.TryGet(i)
	case kindDeque:
		v, ok = r.dequeC.TryGet(i)
	default:
		fmt.Println("get requires an active bucket, fixeddeque, or deque")

		return
	}

	if !ok {
		fmt.Println("(empty)")

		return
	}

	fmt.Println(v)
}

func (r *REPL) cmdRemove(args []string) {
	if r.active != kindBucket {
		fmt.Println("remove requires an active bucket")

		return
	}

	if len(args) < 1 {
		fmt.Println("Usage: remove <i>")

		return
	}

	i, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Printf("Error parsing index: %v\n", err)

		return
	}

	v, ok := r.bucketC.RemoveAt(i)
	if !ok {
		fmt.Println("(already empty)")

		return
	}

	fmt.Printf("removed: %s\n", v)
}

func (r *REPL) cmdAdd(args []string) {
	if r.active != kindHashBucket {
		fmt.Println("add requires an active hashbucket")

		return
	}

	if len(args) < 2 {
		fmt.Println("Usage: add <key> <v>")

		return
	}

	key, val := args[0], args[1]
	capacity := uint64(r.hashBucketC.Capacity())

	for offset := uint64(0); offset < capacity; offset++ {
		index, collision := r.hashBucketC.Add(key, val, offset)
		if index >= 0 {
			fmt.Printf("OK: stored at slot %d (probe offset %d)\n", index, offset)

			return
		}

		if !collision {
			fmt.Println("rejected: key already present")

			return
		}
	}

	fmt.Println("rejected: table full, no free slot found after probing every offset")
}

func (r *REPL) cmdContains(args []string) {
	if r.active != kindHashBucket {
		fmt.Println("contains requires an active hashbucket")

		return
	}

	if len(args) < 1 {
		fmt.Println("Usage: contains <key>")

		return
	}

	capacity := uint64(r.hashBucketC.Capacity())

	for offset := uint64(0); offset < capacity; offset++ {
		if r.hashBucketC.ContainsKey(args[0], offset) >= 0 {
			fmt.Println("true")

			return
		}
	}

	fmt.Println("false")
}

func (r *REPL) cmdHGet(args []string) {
	if r.active != kindHashBucket {
		fmt.Println("hget requires an active hashbucket")

		return
	}

	if len(args) < 1 {
		fmt.Println("Usage: hget <key>")

		return
	}

	capacity := uint64(r.hashBucketC.Capacity())

	for offset := uint64(0); offset < capacity; offset++ {
		if v, index := r.hashBucketC.TryGetValue(args[0], offset); index >= 0 {
			fmt.Println(v)

			return
		}
	}

	fmt.Println("(not found)")
}

func (r *REPL) cmdHRemove(args []string) {
	if r.active != kindHashBucket {
		fmt.Println("hremove requires an active hashbucket")

		return
	}

	if len(args) < 1 {
		fmt.Println("Usage: hremove <key>")

		return
	}

	capacity := uint64(r.hashBucketC.Capacity())

	for offset := uint64(0); offset < capacity; offset++ {
		if r.hashBucketC.Remove(args[0], offset) >= 0 {
			fmt.Println("OK")

			return
		}
	}

	fmt.Println("(not found)")
}

func (r *REPL) cmdPush(args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: push front|back <v>")

		return
	}

	end, val := strings.ToLower(args[0]), args[1]

	switch r.active {
	case kindFixedDeque:
		var ok bool

		if end == "front" {
			ok = r.fixedDequeC.AddFront(val)
		} else {
			ok = r.fixedDequeC.AddBack(val)
		}

		if ok {
			fmt.Println("OK")
		} else {
			fmt.Println("rejected: at capacity")
		}

	case kindDeque:
		if end == "front" {
			r.dequeC.AddFront(val)
		} else {
			r.dequeC.AddBack(val)
		}

		fmt.Println("OK")

	default:
		fmt.Println("push requires an active fixeddeque or deque")
	}
}

func (r *REPL) cmdPop(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: pop front|back")

		return
	}

	end := strings.ToLower(args[0])

	var (
		v  string
		ok bool
	)

	switch r.active {
	case kindFixedDeque:
		if end == "front" {
			v, ok = r.fixedDequeC.TryTakeFront()
		} else {
			v, ok = r.fixedDequeC.TryTakeBack()
		}

	case kindDeque:
		if end == "front" {
			v, ok = r.dequeC.TryTakeFront()
		} else {
			v, ok = r.dequeC.TryTakeBack()
		}

	default:
		fmt.Println("pop requires an active fixeddeque or deque")

		return
	}

	if !ok {
		fmt.Println("(empty)")

		return
	}

	fmt.Println(v)
}

func (r *REPL) cmdPeek(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: peek front|back")

		return
	}

	end := strings.ToLower(args[0])

	var v string

	func() {
		defer func() {
			if rec := recover(); rec != nil {
				fmt.Println("(empty)")
			}
		}()

		switch r.active {
		case kindFixedDeque:
			if end == "front" {
				v = r.fixedDequeC.PeekFront()
			} else {
				v = r.fixedDequeC.PeekBack()
			}

			fmt.Println(v)

		case kindDeque:
			if end == "front" {
				v = r.dequeC.PeekFront()
			} else {
				v = r.dequeC.PeekBack()
			}

			fmt.Println(v)

		default:
			fmt.Println("peek requires an active fixeddeque or deque")
		}
	}()
}

func (r *REPL) cmdLen() {
	switch r.active {
	case kindBucket:
		fmt.Println(r.bucketC.Count())
	case kindHashBucket:
		fmt.Println(r.hashBucketC.Count())
	case kindFixedDeque:
		fmt.Println(r.fixedDequeC.Count())
	case kindDeque:
		fmt.Println(r.dequeC.Count())
	default:
		fmt.Println("no active container (use 'new')")
	}
}

func (r *REPL) cmdCap() {
	switch r.active {
	case kindBucket:
		fmt.Println(r.bucketC.Capacity())
	case kindHashBucket:
		fmt.Println(r.hashBucketC.Capacity())
	case kindFixedDeque:
		fmt.Println(r.fixedDequeC.Capacity())
	case kindDeque:
		fmt.Println(r.dequeC.Capacity())
	default:
		fmt.Println("no active container (use 'new')")
	}
}

func (r *REPL) cmdIter() {
	switch r.active {
	case kindBucket:
		for i, v := range r.bucketC.All() {
			fmt.Printf("%3d. %s\n", i, v)
		}

	case kindHashBucket:
		for k, v := range r.hashBucketC.All() {
			fmt.Printf("%s -> %s\n", k, v)
		}

	case kindFixedDeque:
		for i, v := range r.fixedDequeC.All() {
			fmt.Printf("%3d. %s\n", i, v)
		}

	case kindDeque:
		for i, v := range r.dequeC.All() {
			fmt.Printf("%3d. %s\n", i, v)
		}

	default:
		fmt.Println("no active container (use 'new')")
	}
}
