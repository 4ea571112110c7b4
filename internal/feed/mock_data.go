package feed

import "github.com/centinela-news/feed-sync/internal/domain"

// mockArticles is the bundled offline dataset shown whenever the remote
// dataset cannot be reached. The feed must never render empty because
// of a network failure.
var mockArticles = []domain.FeedArticle{
	{
		ID:       "mock-1",
		Title:    "Javier Milei anuncia nuevas medidas económicas para combatir la inflación",
		Content:  "El presidente argentino presentó un paquete de reformas estructurales que incluye la eliminación de subsidios y la reducción del gasto público. Las medidas buscan estabilizar la economía y reducir la inflación que afecta a millones de argentinos.",
		TimeAgo:  "Hace 15 min",
		Label:    "MILEI",
		Image:    "https://images.pexels.com/photos/6801648/pexels-photo-6801648.jpeg?auto=compress&cs=tinysrgb&w=800",
		Likes:    1247,
		Comments: 89,
		Source:   "Centinela",
		Link:     "#",
	},
	{
		ID:       "mock-2",
		Title:    "ÚLTIMO MOMENTO: Fuerte sismo de 6.2 grados sacude el norte argentino",
		Content:  "Un terremoto de magnitud 6.2 se registró en las provincias de Salta y Jujuy. No se reportan víctimas hasta el momento, pero las autoridades mantienen alerta en la región. Los servicios de emergencia están evaluando posibles daños en la infraestructura.",
		TimeAgo:  "Hace 8 min",
		Label:    "ÚLTIMO MOMENTO",
		Image:    "https://images.pexels.com/photos/1108572/pexels-photo-1108572.jpeg?auto=compress&cs=tinysrgb&w=800",
		Likes:    2156,
		Comments: 234,
		Source:   "Centinela",
		Link:     "#",
	},
	{
		ID:       "mock-3",
		Title:    "El dólar blue alcanza un nuevo récord histórico en el mercado paralelo",
		Content:  "La divisa estadounidense continúa su escalada en el mercado informal, superando los $1.200 pesos. Los analistas económicos atribuyen esta suba a la incertidumbre política y las expectativas sobre las próximas medidas del gobierno.",
		TimeAgo:  "Hace 32 min",
		Label:    "ECONOMÍA",
		Image:    "https://images.pexels.com/photos/259027/pexels-photo-259027.jpeg?auto=compress&cs=tinysrgb&w=800",
		Likes:    892,
		Comments: 156,
		Source:   "Centinela",
		Link:     "#",
	},
	{
		ID:       "mock-4",
		Title:    "Apple presenta la nueva generación de iPhone con inteligencia artificial integrada",
		Content:  "La compañía de Cupertino reveló las características del iPhone 16, que incluye un procesador A18 optimizado para IA y nuevas funciones de fotografía computacional. El dispositivo estará disponible en Argentina a partir del próximo mes.",
		TimeAgo:  "Hace 1 hora",
		Label:    "TECNOLOGÍA",
		Image:    "https://images.pexels.com/photos/788946/pexels-photo-788946.jpeg?auto=compress&cs=tinysrgb&w=800",
		Likes:    1543,
		Comments: 287,
		Source:   "Centinela",
		Link:     "#",
	},
	{
		ID:       "mock-5",
		Title:    "Lionel Messi confirma su participación en la próxima Copa América",
		Content:  "El capitán de la selección argentina anunció que estará presente en el torneo continental. A sus 37 años, Messi busca defender el título obtenido en la edición anterior y consolidar su legado con la albiceleste.",
		TimeAgo:  "Hace 2 horas",
		Label:    "DEPORTES",
		Image:    "https://images.pexels.com/photos/274506/pexels-photo-274506.jpeg?auto=compress&cs=tinysrgb&w=800",
		Likes:    3247,
		Comments: 512,
		Source:   "Centinela",
		Link:     "#",
	},
	{
		ID:       "mock-6",
		Title:    "Bitcoin supera los $70.000 dólares en una nueva ola alcista",
		Content:  "La criptomoneda líder experimenta una fuerte recuperación impulsada por la adopción institucional y las expectativas sobre las próximas regulaciones. Los expertos predicen que podría alcanzar nuevos máximos históricos en los próximos meses.",
		TimeAgo:  "Hace 3 horas",
		Label:    "CRIPTO",
		Image:    "https://images.pexels.com/photos/844124/pexels-photo-844124.jpeg?auto=compress&cs=tinysrgb&w=800",
		Likes:    1876,
		Comments: 298,
		Source:   "Centinela",
		Link:     "#",
	},
}
