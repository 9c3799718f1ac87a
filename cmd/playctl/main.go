package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/coachtools/playctl/internal/config"
	"github.com/coachtools/playctl/internal/logging"
	"github.com/coachtools/playctl/internal/playbook"
	"github.com/coachtools/playctl/internal/share"
	"github.com/coachtools/playctl/internal/store"
)

func main() {
	_ = godotenv.Load()
	log := logging.ConfigureRuntime()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "export":
		err = runExport(os.Args[2:], log)
	case "import":
		err = runImport(os.Args[2:], log)
	case "config":
		err = runConfig(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "playctl: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: playctl <verb> [flags]

verbs:
  export   print a share URL or write a redirector document for a playbook
  import   decode a share URL, payload, or file and add it to the store
  config   write or validate the config file`)
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		if _, err := os.Stat("playctl.toml"); err == nil {
			path = "playctl.toml"
		} else {
			return config.Default(), nil
		}
	}
	return config.Load(path)
}

func runExport(args []string, log zerolog.Logger) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	cfgPath := fs.String("config", "", "config file path")
	id := fs.String("id", "", "playbook id in the store")
	file := fs.String("file", "", "playbook JSON file instead of the store")
	redirect := fs.String("redirect", "", "write the redirector document to this directory")
	fs.Parse(args)

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	st, err := store.Open(cfg.StorePath)
	if err != nil {
		return err
	}
	pb, err := resolvePlaybook(st, *id, *file)
	if err != nil {
		return err
	}
	svc := share.New(cfg, st, terminalConfirmer{}, log)

	if *redirect != "" {
		path, err := svc.ShareDocument(pb, share.NoSharer{}, *redirect)
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	}
	link, err := svc.ShareURL(pb)
	if err != nil {
		return err
	}
	fmt.Println(link)
	return nil
}

func runImport(args []string, log zerolog.Logger) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	cfgPath := fs.String("config", "", "config file path")
	rawURL := fs.String("url", "", "share URL to import")
	payload := fs.String("payload", "", "bare encoded payload to import")
	file := fs.String("file", "", "playbook JSON file to import")
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	fs.Parse(args)

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	st, err := store.Open(cfg.StorePath)
	if err != nil {
		return err
	}
	var confirm share.Confirmer = terminalConfirmer{}
	if *yes {
		confirm = autoConfirmer{}
	}
	svc := share.New(cfg, st, confirm, log)

	switch {
	case *rawURL != "":
		imported, err := svc.ImportFromURL(*rawURL)
		if err != nil {
			return err
		}
		if !imported {
			fmt.Println("nothing imported")
		}
		return nil
	case *payload != "":
		if _, err := svc.ImportPayload(*payload); err != nil {
			return err
		}
		return nil
	case *file != "":
		return importFile(svc, st, *file)
	default:
		return fmt.Errorf("import needs -url, -payload, or -file")
	}
}

// importFile accepts a raw playbook JSON document, a bare plays array from
// the old export format, or a file whose contents are an encoded payload.
func importFile(svc *share.Service, st *store.Store, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	text := strings.TrimSpace(string(data))
	switch {
	case strings.HasPrefix(text, "{"):
		var pb playbook.Playbook
		if err := json.Unmarshal([]byte(text), &pb); err != nil {
			return fmt.Errorf("playbook parse failed (%s): %w", path, err)
		}
		return st.Put(&pb)
	case strings.HasPrefix(text, "["):
		var plays []playbook.Play
		if err := json.Unmarshal([]byte(text), &plays); err != nil {
			return fmt.Errorf("plays parse failed (%s): %w", path, err)
		}
		pb := playbook.New(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), time.Now())
		pb.Plays = plays
		return st.Put(pb)
	default:
		_, err = svc.ImportPayload(text)
		return err
	}
}

func runConfig(args []string) error {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	output := fs.String("output", "playctl.toml", "output path for config template")
	validate := fs.Bool("validate", false, "validate an existing config file")
	force := fs.Bool("force", false, "overwrite existing config file")
	fs.Parse(args)

	if *validate {
		if _, err := config.Load(*output); err != nil {
			return err
		}
		fmt.Printf("validated config at %s\n", *output)
		return nil
	}
	if err := config.WriteTemplate(*output, *force); err != nil {
		return err
	}
	fmt.Printf("wrote config template to %s\n", *output)
	return nil
}

func resolvePlaybook(st *store.Store, id, file string) (*playbook.Playbook, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		var pb playbook.Playbook
		if err := json.Unmarshal(data, &pb); err != nil {
			return nil, fmt.Errorf("playbook parse failed (%s): %w", file, err)
		}
		return &pb, nil
	}
	if id != "" {
		return st.Get(id)
	}
	list := st.List()
	if len(list) == 1 {
		return list[0], nil
	}
	return nil, fmt.Errorf("specify -id or -file (store holds %d playbooks)", len(list))
}

// terminalConfirmer prompts on stdin before an import commits.
type terminalConfirmer struct{}

func (terminalConfirmer) Confirm(name string, plays int) (bool, error) {
	fmt.Printf("Import playbook %q (%d plays)? [y/N] ", name, plays)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

type autoConfirmer struct{}

func (autoConfirmer) Confirm(string, int) (bool, error) { return true, nil }
