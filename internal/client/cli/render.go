package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/recipebook/internal/models"
)

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func renderIngredients(w io.Writer, items []models.Ingredient) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No ingredients")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tНазвание\tКатегория\tЕд.\tЦена\tОписание")
	for i, it := range items {
		price := ""
		if it.PricePerUnit != nil {
			price = formatAmount(*it.PricePerUnit)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			i+1, it.Name, it.Category.Label(), it.Unit.Abbreviation(), price, deref(it.Description))
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "Всего: %d\n", len(items))
}

func renderRecipes(w io.Writer, items []models.Recipe) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No recipes")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tНазвание\tИнгредиентов")
	for i, r := range items {
		fmt.Fprintf(tw, "%d\t%s\t%d\n", i+1, r.Name, len(r.Ingredients))
	}
	_ = tw.Flush()
}

func renderRecipe(w io.Writer, r models.Recipe) {
	fmt.Fprintln(w, r.Name)
	if d := deref(r.Description); d != "" {
		fmt.Fprintln(w, d)
	}
	if img := deref(r.ImageURL); img != "" {
		fmt.Fprintf(w, "Изображение: %s\n", img)
	}
	if len(r.Ingredients) == 0 {
		return
	}
	fmt.Fprintln(w, "Ингредиенты:")
	for _, line := range r.Ingredients {
		fmt.Fprintf(w, "  - %s\n", line.String())
	}
}
