package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"seo_dominator/generator"
	"seo_dominator/server"
	"seo_dominator/store"
	"seo_dominator/wordpress"
)

var verbose bool

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	configDir := flag.String("config", "", "settings directory (default ~/.seo-dominator)")
	serve := flag.Bool("serve", false, "start web server")
	addr := flag.String("addr", ":8080", "http listen address when --serve")

	keywords := flag.String("keywords", "", "main keywords / topic")
	competitors := flag.String("competitors", "", "competitor URLs, comma or newline separated")
	tone := flag.String("tone", "", "content tone")
	language := flag.String("language", "", "output language")
	format := flag.String("format", "blog-post", "publication format")
	images := flag.Bool("images", false, "insert generated images")
	imageProvider := flag.String("image-provider", "", "image provider: gemini, pollinations, unsplash, lorem-flickr")
	provider := flag.String("provider", "", "generation provider: gemini, openai, mock")
	out := flag.String("out", ".", "output directory for exports")

	wpScan := flag.Bool("wp-scan", false, "list WordPress posts and evaluate up to 5 of them")
	flag.BoolVar(&verbose, "v", false, "enable info logs")
	flag.Parse()

	settings, err := store.Open(*configDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	aiProvider := generator.AIProvider(*provider)
	if *provider == "" {
		aiProvider = generator.AIProvider(settings.GetString(store.KeyAIProvider))
	}
	if aiProvider == "" {
		aiProvider = generator.ProviderGemini
	}

	imgProvider := generator.ImageProvider(*imageProvider)
	if *imageProvider == "" {
		imgProvider = generator.ImageProvider(settings.GetString(store.KeyImageProvider))
	}
	if imgProvider == "" {
		imgProvider = generator.ImagePollinations
	}

	ctx := context.Background()

	// WordPress scan mode
	if *wpScan {
		if err := runScan(ctx, settings, aiProvider); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	agent, evaluator, err := buildPipeline(settings, aiProvider, imgProvider)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Web server mode
	if *serve {
		srv, err := server.New(agent, evaluator, settings, log.Default())
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		log.Printf("Starting web server on %s", *addr)
		if err := http.ListenAndServe(*addr, srv.Routes()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	// One-shot generation mode
	if *keywords == "" {
		fmt.Fprintln(os.Stderr, "--keywords is required (or use --serve / --wp-scan)")
		os.Exit(1)
	}
	params := generator.Params{
		MainKeywords:      *keywords,
		CompetitorURLs:    *competitors,
		ContentTone:       *tone,
		Language:          *language,
		PublicationFormat: *format,
		IncludeImages:     *images,
		AIProvider:        aiProvider,
		ImageProvider:     imgProvider,
	}

	log.Printf("[cli] generating keywords=%q format=%s provider=%s", params.MainKeywords, params.PublicationFormat, aiProvider)
	bundle, err := agent.Generate(ctx, params)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := writeExports(*out, bundle); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	printAudit(bundle)
}

// buildPipeline wires the generation agent and post evaluator for the chosen
// providers, reading API keys from the settings store with env fallback.
func buildPipeline(settings *store.Store, aiProvider generator.AIProvider, imgProvider generator.ImageProvider) (*generator.Agent, *wordpress.Evaluator, error) {
	var (
		content   generator.Client
		evalLLM   generator.Client
		imgSource generator.ImageSource
		err       error
	)

	geminiKey := keyFor(settings, store.KeyGeminiKey, "GEMINI_API_KEY")

	switch aiProvider {
	case generator.ProviderGemini:
		content, err = generator.NewGeminiContentClient(generator.Settings{APIKey: geminiKey})
		if err != nil {
			return nil, nil, err
		}
		evalLLM, err = generator.NewGeminiEvaluator(generator.Settings{APIKey: geminiKey})
		if err != nil {
			return nil, nil, err
		}
	case generator.ProviderOpenAI:
		cfg := generator.Settings{
			APIKey: keyFor(settings, store.KeyOpenAIKey, "OPENAI_API_KEY"),
			Model:  settings.GetString(store.KeyOpenAIModel),
		}
		content, err = generator.NewOpenAIContentClient(cfg)
		if err != nil {
			return nil, nil, err
		}
		evalLLM, err = generator.NewOpenAIEvaluator(cfg)
		if err != nil {
			return nil, nil, err
		}
	case "mock":
		content = generator.MockClient{}
	default:
		return nil, nil, fmt.Errorf("generation provider %s not supported", aiProvider)
	}

	if imgProvider == generator.ImageGemini {
		imager, err := generator.NewGeminiImager(generator.Settings{APIKey: geminiKey})
		if err != nil {
			return nil, nil, err
		}
		imgSource = generator.NewResolver(imgProvider, nil, imager)
	} else {
		imgSource = generator.NewResolver(imgProvider, nil, nil)
	}

	agent, err := generator.NewAgent(content, imgSource)
	if err != nil {
		return nil, nil, err
	}

	var evaluator *wordpress.Evaluator
	if evalLLM != nil {
		evaluator, err = wordpress.NewEvaluator(evalLLM)
		if err != nil {
			return nil, nil, err
		}
	}
	return agent, evaluator, nil
}

func keyFor(settings *store.Store, key, envName string) string {
	if v := settings.GetString(key); v != "" {
		return v
	}
	return os.Getenv(envName)
}

func connectionFrom(settings *store.Store) (wordpress.Connection, error) {
	conn := wordpress.Connection{
		URL:         settings.GetString(store.KeyWPURL),
		Username:    settings.GetString(store.KeyWPUsername),
		AppPassword: settings.GetString(store.KeyWPPassword),
	}
	if conn.URL == "" || conn.Username == "" || conn.AppPassword == "" {
		return conn, fmt.Errorf("wordpress credentials missing; set %s, %s, and %s in %s",
			store.KeyWPURL, store.KeyWPUsername, store.KeyWPPassword, settings.Path())
	}
	return conn, nil
}

func runScan(ctx context.Context, settings *store.Store, aiProvider generator.AIProvider) error {
	conn, err := connectionFrom(settings)
	if err != nil {
		return err
	}
	client, err := wordpress.New(conn, nil, verbose, log.Default())
	if err != nil {
		return err
	}
	_, evaluator, err := buildPipeline(settings, aiProvider, generator.ImagePollinations)
	if err != nil {
		return err
	}
	if evaluator == nil {
		return fmt.Errorf("provider %s cannot evaluate posts", aiProvider)
	}

	posts, err := client.ListPosts(ctx)
	if err != nil {
		return err
	}
	log.Printf("[cli] fetched %d posts, evaluating up to 5", len(posts))

	results := evaluator.ScanUnevaluated(ctx, posts)
	for _, p := range posts {
		eval, ok := results[p.ID]
		if !ok {
			continue
		}
		fmt.Printf("%d\t%-12s\t%3.0f%%\t%s\n", p.ID, eval.Status, eval.Score, p.Link)
		for _, s := range eval.Suggestions {
			fmt.Printf("\t- %s\n", s)
		}
	}
	return nil
}

func writeExports(dir string, bundle generator.ContentBundle) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	exports := map[string]string{
		"seo-publication.html":        generator.ExportFullDocument(bundle),
		"seo-publication.md":          generator.ExportMarkdown(bundle),
		"seo-publication.txt":         generator.ExportPlainText(bundle),
		"seo-publication-widget.html": generator.ExportWidget(bundle),
	}
	for name, text := range exports {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(text), 0644); err != nil {
			return err
		}
		log.Printf("[cli] wrote %s", path)
	}
	return nil
}

func printAudit(bundle generator.ContentBundle) {
	fmt.Println("SEO audit:")
	for _, f := range generator.Audit(bundle) {
		fmt.Printf("  [%-7s] %-16s %s\n", f.Status, f.Label, f.Message)
	}
}
