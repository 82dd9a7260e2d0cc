package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sigec/internal/schema"
)

var (
	aplicarFlag bool
	dryRunFlag  bool
	saidaFlag   string
	statusFlag  string
)

var esquemaCmd = &cobra.Command{
	Use:   "esquema",
	Short: "Compara o cabeçalho da planilha com o esquema (use --aplicar para corrigir)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			var (
				action schema.Action
				err    error
			)
			if aplicarFlag {
				action, err = e.store.EnsureSchema(ctx)
			} else {
				action, err = e.store.CheckSchema(ctx)
			}
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if action.NoOp() {
				fmt.Fprintf(out, "cabeçalho confere com o esquema v%d (%d colunas)\n", schema.Version, action.Width)
				return nil
			}
			verbo := "precisa ser reescrito"
			if aplicarFlag {
				verbo = "reescrito"
			}
			fmt.Fprintf(out, "cabeçalho %s a partir da coluna %s (%d nomes); %d colunas acrescentadas\n",
				verbo, schema.Letter(action.StartColumn), len(action.Header), action.AppendColumns)
			return nil
		})
	},
}

var auditarCmd = &cobra.Command{
	Use:   "auditar",
	Short: "Lista linhas com ID vazio, inválido, repetido ou trocado com CRIADO EM",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			problems, err := e.manut.Audit(ctx)
			if err != nil {
				return err
			}
			if len(problems) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "nenhum problema encontrado")
				return nil
			}
			return printJSON(cmd.OutOrStdout(), problems)
		})
	},
}

var corrigirInversaoCmd = &cobra.Command{
	Use:   "corrigir-inversao",
	Short: "Troca ID e CRIADO EM nas linhas em que aparecem invertidos",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			fixed, err := e.manut.RepairSwapped(ctx, dryRunFlag)
			if err != nil {
				return err
			}
			for _, f := range fixed {
				fmt.Fprintf(cmd.OutOrStdout(), "linha %d: ID=%s CRIADO EM=%s\n", f.Row, f.Record.ID, f.Record.CriadoEm)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d linha(s) %s\n", len(fixed), conjugate(dryRunFlag))
			return nil
		})
	},
}

var migrarIDsCmd = &cobra.Command{
	Use:   "migrar-ids",
	Short: "Dá ID sequencial aos cadastros que só têm o ID antigo (timestamp)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			done, err := e.manut.MigrateLegacyIDs(ctx, dryRunFlag)
			if err != nil {
				return err
			}
			for _, m := range done {
				fmt.Fprintf(cmd.OutOrStdout(), "linha %d: %s -> %s\n", m.Row, m.From, m.To)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d cadastro(s) %s\n", len(done), conjugate(dryRunFlag))
			return nil
		})
	},
}

var exportarCmd = &cobra.Command{
	Use:   "exportar",
	Short: "Exporta o cadastro para um arquivo .xlsx",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			f, err := os.Create(saidaFlag)
			if err != nil {
				return err
			}
			n, err := e.manut.Export(ctx, f)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d cliente(s) exportado(s) para %s\n", n, saidaFlag)
			return nil
		})
	},
}

var listarCmd = &cobra.Command{
	Use:   "listar",
	Short: "Lista ID, empresa e status dos clientes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			records, err := e.store.GetAll(ctx)
			if err != nil {
				return err
			}
			for _, r := range records {
				if statusFlag == "ativo" && !r.Ativo() || statusFlag == "inativo" && r.Ativo() {
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-28s %-50s %s\n", r.ID, r.NomeEmpresa, r.StatusCliente)
			}
			return nil
		})
	},
}

func conjugate(dryRun bool) string {
	if dryRun {
		return "seriam alterada(s) (simulação)"
	}
	return "alterada(s)"
}

func init() {
	esquemaCmd.Flags().BoolVar(&aplicarFlag, "aplicar", false, "grava o cabeçalho e expande as colunas")
	corrigirInversaoCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "só mostra o que seria alterado")
	migrarIDsCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "só mostra o que seria alterado")
	exportarCmd.Flags().StringVarP(&saidaFlag, "saida", "o", "clientes.xlsx", "arquivo de saída")
	listarCmd.Flags().StringVar(&statusFlag, "status", "", "filtra por status: ativo ou inativo")
}
