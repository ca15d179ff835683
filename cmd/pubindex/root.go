package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eringen/pubindex"
	"github.com/eringen/pubindex/content"
	"github.com/eringen/pubindex/listing"
)

// config mirrors config.yaml. Every key can be overridden by PUBINDEX_<KEY>;
// basePath also honours the bare BASE_PATH variable.
type config struct {
	Name         string            `mapstructure:"name"`
	URL          string            `mapstructure:"url"`
	Description  string            `mapstructure:"description"`
	Author       string            `mapstructure:"author"`
	Addr         string            `mapstructure:"addr"`
	BasePath     string            `mapstructure:"basePath"`
	ContentDir   string            `mapstructure:"contentDir"`
	Database     string            `mapstructure:"database"`
	StaticDir    string            `mapstructure:"staticDir"`
	TagCounts    map[string]string `mapstructure:"tagCounts"`
	PostsPerPage int               `mapstructure:"postsPerPage"`
	CacheTTL     time.Duration     `mapstructure:"cacheTTL"`
	Watch        bool              `mapstructure:"watch"`
	APIRateLimit int               `mapstructure:"apiRateLimit"`
}

var (
	cfgFile string
	cfg     config
)

// flagKeys maps command-line flags to config keys.
var flagKeys = map[string]string{
	"addr":      "addr",
	"base-path": "basePath",
	"content":   "contentDir",
	"database":  "database",
	"watch":     "watch",
}

var rootCmd = &cobra.Command{
	Use:   "pubindex",
	Short: "Tag index and paginated listings for a bilingual blog",
	Long: `pubindex builds the tag navigation index of an English / Vietnamese blog
and serves the paginated post list and tag pages.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().String("content", "", "directory of markdown posts")
	rootCmd.PersistentFlags().String("database", "", "SQLite database to read posts from instead of the content directory")
	rootCmd.PersistentFlags().String("base-path", "", "URL prefix the site is served under")
}

func initializeConfig(cmd *cobra.Command) error {
	v := viper.New()

	v.SetDefault("name", "Blog")
	v.SetDefault("url", "http://localhost:3000")
	v.SetDefault("description", "")
	v.SetDefault("author", "")
	v.SetDefault("addr", ":3000")
	v.SetDefault("basePath", "")
	v.SetDefault("contentDir", "data/blog")
	v.SetDefault("database", "")
	v.SetDefault("staticDir", "public")
	v.SetDefault("tagCounts", map[string]string{})
	v.SetDefault("postsPerPage", 5)
	v.SetDefault("cacheTTL", 5*time.Minute)
	v.SetDefault("watch", false)
	v.SetDefault("apiRateLimit", 60)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("PUBINDEX")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if err := v.BindEnv("basePath", "PUBINDEX_BASE_PATH", "BASE_PATH"); err != nil {
		return err
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		fmt.Fprintln(cmd.ErrOrStderr(), "Using config file:", v.ConfigFileUsed())
	}

	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	return nil
}

// siteConfig converts the CLI configuration into the server configuration.
func (c config) siteConfig() (pubindex.SiteConfig, error) {
	files, err := c.countFiles()
	if err != nil {
		return pubindex.SiteConfig{}, err
	}
	return pubindex.SiteConfig{
		Name:          c.Name,
		URL:           c.URL,
		Description:   c.Description,
		Author:        c.Author,
		Addr:          c.Addr,
		BasePath:      c.BasePath,
		ContentDir:    c.ContentDir,
		DatabasePath:  c.Database,
		StaticDir:     c.StaticDir,
		TagCountFiles: files,
		PostsPerPage:  c.PostsPerPage,
		PostCacheTTL:  c.CacheTTL,
		WatchContent:  c.Watch,
		APIRateLimit:  c.APIRateLimit,
	}, nil
}

// countFiles resolves the tagCounts keys ("en", "vi") to partitions.
func (c config) countFiles() (map[listing.Partition]string, error) {
	files := make(map[listing.Partition]string, len(c.TagCounts))
	for lang, path := range c.TagCounts {
		part, ok := listing.ParsePartition(lang)
		if !ok {
			return nil, fmt.Errorf("tagCounts: unknown language %q", lang)
		}
		files[part] = path
	}
	return files, nil
}

// openCorpus returns the configured post source and a function releasing it.
func (c config) openCorpus() (pubindex.Corpus, func() error, error) {
	if c.Database == "" {
		return content.Dir(c.ContentDir), func() error { return nil }, nil
	}
	store, err := pubindex.NewStore(c.Database)
	if err != nil {
		return nil, nil, err
	}
	return store, store.Close, nil
}
