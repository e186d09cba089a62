package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/robotalks/cmpp.go/pkg/store"
)

type imageFlags struct {
	path string
}

func (f *imageFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.path, "eeprom", os.Getenv("CMPP_EEPROM"), "EEPROM image file (required)")
}

// openImage opens the image without reading any record.
func (f *imageFlags) openImage() (*store.Store, *store.File, error) {
	if f.path == "" {
		return nil, nil, fmt.Errorf("required flag --eeprom not set")
	}
	file, err := store.OpenFile(f.path)
	if err != nil {
		return nil, nil, err
	}
	return store.New(file), file, nil
}

// open loads every record of the image. Records with a bad signature
// are reset to factory values and written back.
func (f *imageFlags) open() (*store.Store, *store.File, error) {
	s, file, err := f.openImage()
	if err != nil {
		return nil, nil, err
	}
	if err := s.LoadAll(); err != nil {
		file.Close()
		return nil, nil, err
	}
	return s, file, nil
}

func newInitCmd() *cobra.Command {
	flags := &imageFlags{}
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write factory records into the image",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, file, err := flags.openImage()
			if err != nil {
				return err
			}
			defer file.Close()
			for _, name := range store.RecordNames() {
				rec, _ := s.Record(name)
				rec.Reset()
			}
			return s.SaveAll()
		},
	}
	flags.register(cmd)
	return cmd
}

type dumpFlags struct {
	imageFlags
	raw bool
}

func newDumpCmd() *cobra.Command {
	flags := &dumpFlags{}
	cmd := &cobra.Command{
		Use:   "dump [RECORD...]",
		Short: "Print records as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, file, err := flags.open()
			if err != nil {
				return err
			}
			defer file.Close()
			if flags.raw {
				fmt.Fprint(cmd.OutOrStdout(), hex.Dump(file.Bytes()))
				return nil
			}
			return dumpRecords(cmd, s, args)
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&flags.raw, "raw", false, "Hex dump the image instead")
	return cmd
}

func dumpRecords(cmd *cobra.Command, s *store.Store, names []string) error {
	if len(names) == 0 {
		names = store.RecordNames()
	}
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range names {
		rec, err := s.Record(name)
		if err != nil {
			return err
		}
		fields := &yaml.Node{Kind: yaml.MappingNode}
		for _, f := range store.Fields(rec) {
			fields.Content = append(fields.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: f.Name},
				&yaml.Node{Kind: yaml.ScalarNode, Value: f.String()})
		}
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: name}, fields)
	}
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func newSetCmd() *cobra.Command {
	flags := &imageFlags{}
	cmd := &cobra.Command{
		Use:   "set RECORD FIELD VALUE",
		Short: "Change a field and save its record",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, file, err := flags.open()
			if err != nil {
				return err
			}
			defer file.Close()
			rec, err := s.Record(args[0])
			if err != nil {
				return err
			}
			if err := store.SetField(rec, args[1], args[2]); err != nil {
				return err
			}
			return s.SaveRecord(args[0])
		},
	}
	flags.register(cmd)
	return cmd
}
