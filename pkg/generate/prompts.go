package generate

import (
	"fmt"
	"strings"
)

const (
	structureSystem = "Eres un experto en creación de contenido estructurado. Genera estructuras detalladas en formato JSON."
	pageSystem      = "Eres un experto escritor de contenido técnico. Genera contenido detallado y bien estructurado."
	articleSystem   = "Eres un experto escritor de contenido técnico. Genera contenido detallado con bloques específicos."
)

const chaptersShape = `{
  "title": "Título del contenido",
  "description": "Descripción breve",
  "chapters": [
    {
      "id": "uuid",
      "title": "Título del capítulo",
      "description": "Descripción del capítulo",
      "order": 1,
      "pages": [
        {
          "id": "uuid",
          "title": "Título de la página",
          "description": "Descripción de la página",
          "order": 1
        }
      ]
    }
  ]
}`

const sectionsShape = `{
  "title": "Título del contenido",
  "description": "Descripción breve",
  "sections": [
    {
      "title": "Título de sección",
      "type": "hero|header1|text|list|code|image",
      "content": "Contenido específico"
    }
  ]
}`

const blocksShape = `{
  "blocks": [
    {
      "type": "header1|header2|text|list|code|image|quote|pro-tip",
      "content": {
        // Contenido específico según el tipo de bloque
        // Para text: { "text": "contenido del párrafo" }
        // Para list: { "items": ["item1", "item2"] }
        // Para code: { "code": "código", "language": "javascript", "title": "título" }
        // Para quote: { "text": "cita", "author": "autor" }
        // Para pro-tip: { "title": "Pro Tip:", "text": "consejo", "icon": "Lightbulb" }
      }
    }
  ]
}`

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func structurePrompt(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Genera una estructura detallada para un %s sobre %q.\n\n", req.ContentType, req.Topic)
	fmt.Fprintf(&b, "Descripción: %s\n", orDefault(req.Description, "No especificada"))
	fmt.Fprintf(&b, "Audiencia objetivo: %s\n", orDefault(req.TargetAudience, "General"))
	if req.IncludeChapters {
		b.WriteString("Incluir capítulos: Sí\n")
		fmt.Fprintf(&b, "Número de capítulos: %d\n", req.ChaptersCount)
	} else {
		b.WriteString("Incluir capítulos: No\n")
	}
	b.WriteString("\nResponde SOLO con un JSON válido con esta estructura:\n")
	if req.IncludeChapters {
		b.WriteString(chaptersShape)
	} else {
		b.WriteString(sectionsShape)
	}
	b.WriteString("\n\nAsegúrate de que el contenido sea relevante, bien estructurado y apropiado para la audiencia objetivo.\n")
	return b.String()
}

func contentPrompt(title, description string, req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Genera contenido detallado para la sección %q del %s sobre %q.\n\n", title, req.ContentType, req.Topic)
	fmt.Fprintf(&b, "Descripción de la sección: %s\n", orDefault(description, "No especificada"))
	fmt.Fprintf(&b, "Audiencia objetivo: %s\n", orDefault(req.TargetAudience, "General"))
	b.WriteString("\nResponde SOLO con un JSON válido con esta estructura:\n")
	b.WriteString(blocksShape)
	b.WriteString("\n\nGenera entre 3-8 bloques variados que cubran el tema de forma completa y educativa.\n")
	b.WriteString("Incluye ejemplos prácticos, consejos y código cuando sea relevante.\n")
	return b.String()
}
