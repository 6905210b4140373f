// Command vcclient is a thin CLI around package client: load a config
// file and an entity private certificate, connect to an agent, and run
// a single request.
package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/velopayments/vcblockchain/client"
	"github.com/velopayments/vcblockchain/config"
	"github.com/velopayments/vcblockchain/entitycert"
	"github.com/velopayments/vcblockchain/logging"
	"github.com/velopayments/vcblockchain/suite"
)

var (
	configPath  string
	certPath    string
	clientUUIDFlag string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "vcclient",
		Short: "Talk to a blockchain agent over the authenticated protocol",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "vcclient.yaml", "path to client config file")
	root.PersistentFlags().StringVar(&certPath, "cert", "", "path to the client's private entity certificate")
	root.PersistentFlags().StringVar(&clientUUIDFlag, "client-uuid", "", "this client's UUID")

	root.AddCommand(newLatestBlockCmd())
	root.AddCommand(newStatusCmd())
	root.AddCommand(newBlockCmd())
	root.AddCommand(newTransactionCmd())
	return root
}

func connect() (*client.Client, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	certBytes, err := os.ReadFile(certPath)
	if err != nil {
		return nil, fmt.Errorf("read certificate: %w", err)
	}
	opts, err := suite.Lookup(suite.ID(cfg.Session.SuiteID))
	if err != nil {
		return nil, err
	}
	cert, err := entitycert.DecodePrivateCert(certBytes, opts)
	if err != nil {
		return nil, fmt.Errorf("decode certificate: %w", err)
	}

	clientUUID, err := uuid.Parse(clientUUIDFlag)
	if err != nil {
		return nil, fmt.Errorf("parse client uuid: %w", err)
	}

	log, err := logging.New("vcclient", logging.INFO, cfg.Logging.OutputFile)
	if err != nil {
		return nil, err
	}

	return client.Connect(context.Background(), cfg, clientUUID, cert, log)
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Query the agent's liveness status",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := connect()
			if err != nil {
				return err
			}
			defer c.Close()
			return c.Status()
		},
	}
}

func newLatestBlockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "latest-block",
		Short: "Print the agent's current latest block id",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := connect()
			if err != nil {
				return err
			}
			defer c.Close()
			id, err := c.LatestBlockID()
			if err != nil {
				return err
			}
			fmt.Println(id)
			return nil
		},
	}
}

func newBlockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "block <block-uuid>",
		Short: "Fetch a block by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return err
			}
			c, err := connect()
			if err != nil {
				return err
			}
			defer c.Close()
			resp, err := c.BlockByID(id)
			if err != nil {
				return err
			}
			fmt.Printf("height=%d prev=%s next=%s first_txn=%s cert=%s\n",
				resp.BlockHeight, resp.PrevBlockID, resp.NextBlockID, resp.FirstTxnID, hex.EncodeToString(resp.Certificate))
			return nil
		},
	}
}

func newTransactionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transaction <txn-uuid>",
		Short: "Fetch a transaction by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return err
			}
			c, err := connect()
			if err != nil {
				return err
			}
			defer c.Close()
			resp, err := c.TransactionByID(id)
			if err != nil {
				return err
			}
			fmt.Printf("state=%d block=%s artifact=%s cert=%s\n",
				resp.State, resp.BlockID, resp.ArtifactID, hex.EncodeToString(resp.Certificate))
			return nil
		},
	}
}
